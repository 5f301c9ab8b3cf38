package classify

// Log prefixes
const (
	LogPrefixClassify = "internal.classify.Classify"
)

// Scoring defaults. An input matches an intent only when its best score
// clears the absolute threshold AND leads the runner-up by the margin;
// anything closer is ambiguous and reported as unclassified.
const (
	DefaultThreshold = 0.6
	DefaultMargin    = 0.1
)

// Blend weights for the two lexical signals. Whole-string similarity
// dominates because short replies ("yes", "nope") carry little token signal.
const (
	weightSimilarity   = 0.7
	weightTokenOverlap = 0.3
)
