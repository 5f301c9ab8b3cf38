package nlp

// FeatureVector is the linguistic view of one piece of text used for
// similarity scoring: the normalized form plus its content tokens.
type FeatureVector struct {
	Normalized string
	Tokens     []string
}

// Empty reports whether normalization left nothing to score.
func (v FeatureVector) Empty() bool {
	return v.Normalized == ""
}
