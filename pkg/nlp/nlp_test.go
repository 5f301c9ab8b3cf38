package nlp_test

import (
	"testing"

	"parley/pkg/nlp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Lowercase and trim", in: "  YES  ", want: "yes"},
		{name: "Strip punctuation", in: "like, why though?", want: "like why though"},
		{name: "Collapse whitespace", in: "not \t really", want: "not really"},
		{name: "Strip diacritics", in: "naïve café", want: "naive cafe"},
		{name: "Keep emoji", in: "👍", want: "👍"},
		{name: "Keep emoji with text", in: "yes 🙂!", want: "yes 🙂"},
		{name: "Punctuation only", in: "?!...", want: ""},
		{name: "Empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nlp.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
		min  float64
		max  float64
	}{
		{name: "Exact", a: "yes", b: "yes", want: 1.0},
		{name: "Both empty", a: "", b: "", want: 0.0},
		{name: "One empty", a: "yes", b: "", want: 0.0},
		{name: "Containment", a: "think so", b: "i dont think so", min: 0.5, max: 0.6},
		{name: "Close edit", a: "yep", b: "yes", min: 0.6, max: 0.7},
		{name: "Unrelated", a: "banana", b: "yes", max: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nlp.Similarity(tt.a, tt.b)
			if tt.min == 0 && tt.max == 0 {
				if got != tt.want {
					t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
				}
				return
			}
			if got < tt.min || got > tt.max {
				t.Errorf("Similarity(%q, %q) = %v, want in [%v, %v]", tt.a, tt.b, got, tt.min, tt.max)
			}
		})
	}
}

func TestSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"yes", "yep"},
		{"not really", "really"},
		{"i agree", "i disagree"},
	}

	for _, p := range pairs {
		if ab, ba := nlp.Similarity(p[0], p[1]), nlp.Similarity(p[1], p[0]); ab != ba {
			t.Errorf("Similarity not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestTokenOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{name: "Identical", a: []string{"why", "though"}, b: []string{"why", "though"}, want: 1.0},
		{name: "Disjoint", a: []string{"yes"}, b: []string{"no"}, want: 0.0},
		{name: "Half shared", a: []string{"not", "really"}, b: []string{"really"}, want: 0.5},
		{name: "Empty side", a: nil, b: []string{"yes"}, want: 0.0},
		{name: "Duplicates collapse", a: []string{"no", "no"}, b: []string{"no"}, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nlp.TokenOverlap(tt.a, tt.b); got != tt.want {
				t.Errorf("TokenOverlap(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestExtractorFeatures(t *testing.T) {
	ex := nlp.NewExtractor()

	v := ex.Features("The answer, for now, is NO!")
	if v.Normalized != "the answer for now is no" {
		t.Errorf("unexpected normalized form: %q", v.Normalized)
	}

	want := []string{"answer", "now", "is", "no"}
	if len(v.Tokens) != len(want) {
		t.Fatalf("tokens = %v, want %v", v.Tokens, want)
	}
	for i, tok := range want {
		if v.Tokens[i] != tok {
			t.Errorf("token[%d] = %q, want %q", i, v.Tokens[i], tok)
		}
	}

	if !ex.Features("").Empty() {
		t.Errorf("expected empty feature vector for empty input")
	}
	if ex.Features("👍").Empty() {
		t.Errorf("emoji reply should survive normalization")
	}
}
