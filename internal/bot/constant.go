package bot

// Log prefixes
const (
	LogPrefixDispatch = "internal.bot.Dispatch"
	LogPrefixHandler  = "internal.bot.handler"
)
