package webhook

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	// TelegramSecret is the secret token registered with setWebhook.
	// Telegram echoes it in the X-Telegram-Bot-Api-Secret-Token header;
	// empty disables the check.
	TelegramSecret string

	// GoogleChatAudience is the audience expected in Google Chat bearer
	// tokens (the Cloud project number). Empty disables verification.
	GoogleChatAudience string

	AllowedIPs      []string // IP whitelist (optional)
	RateLimitPerMin int      // Max requests per minute per sender
	MaxBodyBytes    int64    // Request body cap; 0 uses DefaultMaxBodyBytes
}
