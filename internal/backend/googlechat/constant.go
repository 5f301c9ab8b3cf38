package googlechat

// Log prefixes
const (
	LogPrefixHandleWebhook = "internal.backend.googlechat.HandleWebhook"
)
