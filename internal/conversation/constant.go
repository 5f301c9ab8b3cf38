package conversation

// Log prefixes
const (
	LogPrefixAsk    = "internal.conversation.Ask"
	LogPrefixTell   = "internal.conversation.Tell"
	LogPrefixListen = "internal.conversation.Listen"
)

// Session defaults. MaxRetries counts clarification re-prompts after the
// first unclassified reply, so a session gives up after MaxRetries+1 replies.
const (
	DefaultMaxRetries    = 2
	DefaultClarification = "Sorry, I didn't understand that."
)
