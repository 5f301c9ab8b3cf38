package classify

import (
	"parley/internal/intent"
	"parley/pkg/nlp"
)

// FeatureExtractor supplies the linguistic features used for similarity
// scoring. It is injected so the scoring strategy can be swapped (or stubbed
// deterministically in tests) without touching the classifier.
type FeatureExtractor interface {
	Features(text string) nlp.FeatureVector
}

// Score is one candidate's similarity to the input, for diagnostics.
type Score struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Result is the outcome of one classification call. An unclassifiable input
// is not an error: Matched is false and Text carries the raw input.
type Result struct {
	Matched    bool          `json:"matched"`
	Intent     intent.Intent `json:"-"`
	Confidence float64       `json:"confidence"`
	Text       string        `json:"text"`   // verbatim input text
	Scores     []Score       `json:"scores"` // per-candidate scores, highest first
}
