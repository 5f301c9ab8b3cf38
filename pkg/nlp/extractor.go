package nlp

import "strings"

// Extractor produces FeatureVectors for similarity scoring. The stopword set
// is deliberately small: negations and short affirmations carry the signal in
// conversational replies, so only glue words are dropped.
type Extractor struct {
	stopWords map[string]bool
}

// NewExtractor creates an Extractor with the default English stopword set.
func NewExtractor() *Extractor {
	stopWords := map[string]bool{
		"the": true, "a": true, "an": true,
		"to": true, "of": true, "in": true, "on": true, "at": true,
		"for": true, "with": true, "and": true, "or": true,
	}

	return &Extractor{stopWords: stopWords}
}

// Features normalizes text and extracts its content tokens.
func (e *Extractor) Features(text string) FeatureVector {
	normalized := Normalize(text)

	var tokens []string
	for _, word := range strings.Fields(normalized) {
		if !e.stopWords[word] {
			tokens = append(tokens, word)
		}
	}

	return FeatureVector{
		Normalized: normalized,
		Tokens:     tokens,
	}
}
