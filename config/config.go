package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Conversation engine
	Conversation ConversationConfig
	Classifier   ClassifierConfig
	Mailbox      MailboxConfig

	// Chat backends
	Telegram   TelegramConfig
	GoogleChat GoogleChatConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// ConversationConfig tunes the ask/clarify/retry loop.
type ConversationConfig struct {
	MaxRetries    int           // Clarification re-prompts per question; 0 = package default
	Clarification string        // Re-prompt text; empty = package default
	ReplyTimeout  time.Duration // Per-reply wait; 0 = wait forever
}

// ClassifierConfig tunes lexical matching. Zeros fall back to the
// classifier's package defaults.
type ClassifierConfig struct {
	Threshold float64
	Margin    float64
}

type MailboxConfig struct {
	Capacity int // Per-channel queue depth; 0 = package default
}

type TelegramConfig struct {
	BotToken      string
	Mode          string // "webhook" or "poll"
	WebhookURL    string
	WebhookSecret string
	PollTimeout   int // Long-poll hold in seconds
}

type GoogleChatConfig struct {
	CredentialsPath string
	Audience        string // Cloud project number expected in inbound tokens
}

type WebhookConfig struct {
	AllowedIPs      []string
	RateLimitPerMin int
	MaxBodyBytes    int64
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Conversation engine
	cfg.Conversation.MaxRetries = viper.GetInt("conversation.max_retries")
	cfg.Conversation.Clarification = viper.GetString("conversation.clarification")
	cfg.Conversation.ReplyTimeout = viper.GetDuration("conversation.reply_timeout")
	cfg.Classifier.Threshold = viper.GetFloat64("classifier.threshold")
	cfg.Classifier.Margin = viper.GetFloat64("classifier.margin")
	cfg.Mailbox.Capacity = viper.GetInt("mailbox.capacity")

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.Mode = viper.GetString("telegram.mode")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = viper.GetString("telegram.webhook_secret")
	cfg.Telegram.PollTimeout = viper.GetInt("telegram.poll_timeout")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	if tgSecret := viper.GetString("telegram_webhook_secret"); tgSecret != "" {
		cfg.Telegram.WebhookSecret = tgSecret
	}

	// Google Chat
	cfg.GoogleChat.CredentialsPath = viper.GetString("google_chat.credentials_path")
	cfg.GoogleChat.Audience = viper.GetString("google_chat.audience")
	if googleCreds := viper.GetString("google_chat_credentials"); googleCreds != "" {
		cfg.GoogleChat.CredentialsPath = googleCreds
	}
	if audience := viper.GetString("google_chat_audience"); audience != "" {
		cfg.GoogleChat.Audience = audience
	}

	// Webhooks
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.MaxBodyBytes = viper.GetInt64("webhook.max_body_bytes")

	// Split allowed IPs since viper might not parse array seamlessly from env
	var ips []string
	if rawIps := viper.GetString("webhook.allowed_ips"); rawIps != "" {
		for _, ip := range strings.Split(rawIps, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				ips = append(ips, ip)
			}
		}
	}
	cfg.Webhook.AllowedIPs = ips

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// A reply can take a while, but handlers must not hang forever when a
	// user walks away mid-conversation.
	viper.SetDefault("conversation.reply_timeout", "5m")

	viper.SetDefault("telegram.mode", "webhook")
	viper.SetDefault("telegram.poll_timeout", 30)

	viper.SetDefault("webhook.rate_limit_per_min", 60)
}
