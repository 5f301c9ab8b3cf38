package telegram

// Log prefixes
const (
	LogPrefixHandleWebhook = "internal.backend.telegram.HandleWebhook"
	LogPrefixPoller        = "internal.backend.telegram.Poller"
)

// DefaultPollTimeout is the long-poll hold, in seconds, passed to getUpdates.
const DefaultPollTimeout = 30
