package classify

import (
	"context"

	"parley/internal/intent"
	"parley/pkg/log"
)

// Classifier matches a raw text reply against a candidate intent set.
type Classifier interface {
	Classify(ctx context.Context, text string, candidates intent.Set) (Result, error)
}

// Config tunes the lexical classifier. Zero values fall back to the package
// defaults.
type Config struct {
	Threshold float64 // absolute minimum confidence for a match
	Margin    float64 // required lead over the runner-up
}

// Lexical scores candidates by string and token similarity against their
// example utterances. Pure: no side effects, safe for concurrent use.
type Lexical struct {
	extractor FeatureExtractor
	cfg       Config
	l         log.Logger
}

// Ensure Lexical implements Classifier interface
var _ Classifier = (*Lexical)(nil)

// New creates a lexical Classifier with the given feature extractor.
// Convention: Factory function returns concrete type (not interface) for internal packages
func New(extractor FeatureExtractor, cfg Config, l log.Logger) *Lexical {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.Margin <= 0 {
		cfg.Margin = DefaultMargin
	}
	return &Lexical{
		extractor: extractor,
		cfg:       cfg,
		l:         l,
	}
}
