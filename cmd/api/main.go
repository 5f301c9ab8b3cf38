package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"parley/config"
	_ "parley/docs" // Swagger docs
	"parley/internal/backend"
	gcBackend "parley/internal/backend/googlechat"
	tgBackend "parley/internal/backend/telegram"
	"parley/internal/bot"
	"parley/internal/classify"
	"parley/internal/conversation"
	"parley/internal/httpserver"
	"parley/internal/inspect"
	"parley/internal/intent"
	"parley/internal/model"
	"parley/internal/webhook"
	"parley/pkg/gchat"
	"parley/pkg/log"
	"parley/pkg/nlp"
	"parley/pkg/telegram"
)

// @title       Parley API
// @description Conversational ask/answer engine: intent classification over pluggable chat backends.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Parley...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Classification engine
	registry := intent.NewRegistry()
	if err := intent.RegisterBuiltins(registry); err != nil {
		logger.Error(ctx, "Failed to register built-in intents: ", err)
		return
	}
	classifier := classify.New(nlp.NewExtractor(), classify.Config{
		Threshold: cfg.Classifier.Threshold,
		Margin:    cfg.Classifier.Margin,
	}, logger)

	// 4. Transports. Both backends feed one shared mailbox; outbound traffic
	// is routed back to the owning transport by channel shape.
	mailbox := backend.NewMailbox(cfg.Mailbox.Capacity)

	var telegramBot *telegram.Bot
	var telegramBackend *tgBackend.Backend
	if cfg.Telegram.BotToken != "" {
		telegramBot = telegram.NewBot(cfg.Telegram.BotToken)
		telegramBackend, err = tgBackend.New(logger, telegramBot, mailbox)
		if err != nil {
			logger.Error(ctx, "Failed to initialize Telegram backend: ", err)
			return
		}
		logger.Info(ctx, "✅ Telegram backend initialized")
	} else {
		logger.Warn(ctx, "Telegram disabled: TELEGRAM_BOT_TOKEN is missing")
	}

	var chatBackend *gcBackend.Backend
	if cfg.GoogleChat.CredentialsPath != "" {
		chatClient, gcErr := gchat.NewClientFromCredentialsFile(ctx, cfg.GoogleChat.CredentialsPath)
		if gcErr != nil {
			logger.Warnf(ctx, "Google Chat not available (optional): %v", gcErr)
			logger.Warn(ctx, "→ For OAuth Desktop credentials, run `go run scripts/gchat-auth/main.go` to generate token.json")
		} else {
			chatBackend, err = gcBackend.New(logger, chatClient, mailbox)
			if err != nil {
				logger.Error(ctx, "Failed to initialize Google Chat backend: ", err)
				return
			}
			logger.Info(ctx, "✅ Google Chat backend initialized")
		}
	} else {
		logger.Warn(ctx, "Google Chat disabled: GOOGLE_CHAT_CREDENTIALS is missing")
	}

	if telegramBackend == nil && chatBackend == nil {
		logger.Warn(ctx, "No chat backend configured; serving only the inspect API")
	}

	// backendFor routes a channel to the transport that owns it. Google Chat
	// channels are resource names ("spaces/..."), Telegram chat IDs are numeric.
	backendFor := func(channel model.ChannelID) (backend.Backend, error) {
		if strings.HasPrefix(string(channel), "spaces/") {
			if chatBackend == nil {
				return nil, fmt.Errorf("no Google Chat backend for channel %q", channel)
			}
			return chatBackend, nil
		}
		if telegramBackend == nil {
			return nil, fmt.Errorf("no Telegram backend for channel %q", channel)
		}
		return telegramBackend, nil
	}

	// 5. Dispatcher: first contact on a channel spawns the conversation script.
	handler, err := script(registry)
	if err != nil {
		logger.Error(ctx, "Failed to build conversation script: ", err)
		return
	}

	dispatcher, err := bot.New(bot.Config{
		Logger:  logger,
		Mailbox: mailbox,
		NewSession: func(channel model.ChannelID) (*conversation.Session, error) {
			be, beErr := backendFor(channel)
			if beErr != nil {
				return nil, beErr
			}
			return conversation.New(conversation.Config{
				Logger:        logger,
				Backend:       be,
				Classifier:    classifier,
				Channel:       channel,
				MaxRetries:    cfg.Conversation.MaxRetries,
				Clarification: cfg.Conversation.Clarification,
				ReplyTimeout:  cfg.Conversation.ReplyTimeout,
			})
		},
		Handler: handler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize dispatcher: ", err)
		return
	}
	dispatcher.Start(ctx)

	// 6. Inbound delivery
	var telegramHandler tgBackend.Handler
	var googleChatHandler gcBackend.Handler

	if telegramBackend != nil {
		switch cfg.Telegram.Mode {
		case "poll":
			// Telegram refuses getUpdates while a webhook is registered.
			if whErr := telegramBot.DeleteWebhook(ctx); whErr != nil {
				logger.Warnf(ctx, "Failed to delete Telegram webhook before polling: %v", whErr)
			}
			poller := tgBackend.NewPoller(logger, telegramBot, dispatcher, cfg.Telegram.PollTimeout)
			go func() {
				if pErr := poller.Run(ctx); pErr != nil && ctx.Err() == nil {
					logger.Errorf(ctx, "Telegram poller stopped: %v", pErr)
				}
			}()
			logger.Info(ctx, "✅ Telegram long polling started")
		default:
			security := webhook.NewSecurityValidator(webhook.SecurityConfig{
				TelegramSecret:  cfg.Telegram.WebhookSecret,
				AllowedIPs:      cfg.Webhook.AllowedIPs,
				RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
				MaxBodyBytes:    cfg.Webhook.MaxBodyBytes,
			})
			telegramHandler = tgBackend.NewHandler(logger, dispatcher, security)

			// Register webhook: auto-detect ngrok or fallback to manual config
			webhookURL := cfg.Telegram.WebhookURL
			if webhookURL == "" {
				ngrokURL, ngrokErr := detectNgrokURL(ctx, "http://ngrok:4040")
				if ngrokErr != nil {
					logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
				} else {
					webhookURL = ngrokURL + "/webhooks/telegram"
					logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
				}
			}

			if webhookURL != "" {
				if whErr := telegramBot.SetWebhook(ctx, webhookURL, cfg.Telegram.WebhookSecret); whErr != nil {
					logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
				} else {
					logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
				}
			}
		}
	}

	if chatBackend != nil {
		security := webhook.NewSecurityValidator(webhook.SecurityConfig{
			GoogleChatAudience: cfg.GoogleChat.Audience,
			AllowedIPs:         cfg.Webhook.AllowedIPs,
			RateLimitPerMin:    cfg.Webhook.RateLimitPerMin,
			MaxBodyBytes:       cfg.Webhook.MaxBodyBytes,
		})
		googleChatHandler = gcBackend.NewHandler(logger, dispatcher, security)
	}

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:            logger,
		Port:              cfg.HTTPServer.Port,
		Mode:              cfg.HTTPServer.Mode,
		Environment:       cfg.Environment.Name,
		TelegramHandler:   telegramHandler,
		GoogleChatHandler: googleChatHandler,
		InspectHandler:    inspect.New(logger, classifier, registry),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// script builds the conversation every first contact kicks off. It exists to
// show the engine end to end; deployments swap in their own bot.HandlerFunc.
func script(registry *intent.Registry) (bot.HandlerFunc, error) {
	if _, err := registry.Register("SHORT", "short", "short answers", "keep it brief", "brief", "concise"); err != nil {
		return nil, err
	}
	if _, err := registry.Register("LONG", "long", "long explanations", "give me details", "detailed", "in depth"); err != nil {
		return nil, err
	}
	styles, err := registry.SetOf("SHORT", "LONG")
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, sess *conversation.Session) error {
		trigger, err := sess.Listen(ctx)
		if err != nil {
			return err
		}

		name := trigger.Sender.FullName()
		if name == "" {
			name = "there"
		}

		wantsDemo, err := sess.AskYesNo(ctx, fmt.Sprintf("Hi %s! I understand free-text answers. Want a quick demo?", name))
		if err != nil {
			return signOff(ctx, sess, err)
		}
		if !wantsDemo {
			return sess.Tell(ctx, "No problem. Message me again any time.")
		}

		style, err := sess.Ask(ctx, "Do you prefer short answers or long explanations?", styles)
		if err != nil {
			return signOff(ctx, sess, err)
		}

		if style.Name == "SHORT" {
			return sess.Tell(ctx, "Noted. Short it is.")
		}
		return sess.Tell(ctx, "Understood! I will happily elaborate on anything you ask, at whatever length the topic deserves.")
	}, nil
}

// signOff turns a classification dead-end into a polite goodbye; any other
// error propagates to the dispatcher.
func signOff(ctx context.Context, sess *conversation.Session, err error) error {
	var ncErr *conversation.NoClassificationError
	if errors.As(err, &ncErr) {
		return sess.Tell(ctx, "I couldn't make sense of that, so let's leave it here. Message me again to restart.")
	}
	return err
}
