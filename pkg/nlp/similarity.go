package nlp

import (
	"math"
	"strings"
)

// Similarity scores two already-normalized strings in [0, 1]: exact match
// wins, containment scores by length ratio, anything else by Levenshtein
// distance over the longer length.
func Similarity(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0.0
		}
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	ra, rb := []rune(a), []rune(b)

	if contains(a, b) {
		shorter, longer := len(ra), len(rb)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) / float64(longer)
	}

	distance := levenshtein(ra, rb)
	maxLen := math.Max(float64(len(ra)), float64(len(rb)))
	return math.Max(0, 1.0-float64(distance)/maxLen)
}

// TokenOverlap is the Jaccard index of two token lists.
func TokenOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}

	union := len(set)
	shared := 0
	seen := make(map[string]bool, len(b))
	for _, t := range b {
		if seen[t] {
			continue
		}
		seen[t] = true
		if set[t] {
			shared++
		} else {
			union++
		}
	}

	return float64(shared) / float64(union)
}

func contains(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func levenshtein(s1, s2 []rune) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			curr[j] = minOf(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}

func minOf(a, b, c int) int {
	if a < b && a < c {
		return a
	} else if b < c {
		return b
	}
	return c
}
