package classify

import (
	"context"
	"fmt"
	"sort"

	"parley/internal/intent"
	"parley/pkg/nlp"
)

// Classify scores text against every candidate and returns the best match,
// or an unmatched Result when no candidate clears the threshold or the top
// two are too close to call. Ambiguity is never resolved by guessing.
func (c *Lexical) Classify(ctx context.Context, text string, candidates intent.Set) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, fmt.Errorf("%s: %w", LogPrefixClassify, ErrEmptyCandidates)
	}

	input := c.extractor.Features(text)

	result := Result{
		Text:   text,
		Scores: make([]Score, 0, len(candidates)),
	}

	best, runnerUp := -1.0, -1.0
	bestIdx := -1

	for i, cand := range candidates {
		if len(cand.Examples) == 0 {
			return Result{}, fmt.Errorf("%s: intent %s: %w", LogPrefixClassify, cand.Name, intent.ErrNoExamples)
		}

		score := c.scoreIntent(input, cand)
		result.Scores = append(result.Scores, Score{Intent: cand.Name, Confidence: score})

		if score > best {
			runnerUp = best
			best = score
			bestIdx = i
		} else if score > runnerUp {
			runnerUp = score
		}
	}

	sort.SliceStable(result.Scores, func(i, j int) bool {
		return result.Scores[i].Confidence > result.Scores[j].Confidence
	})

	winner := candidates[bestIdx]
	threshold := c.cfg.Threshold
	if winner.Threshold > 0 {
		threshold = winner.Threshold
	}

	if best < threshold {
		c.l.Debugf(ctx, "%s: unclassified %q (best %s=%.2f below threshold %.2f)",
			LogPrefixClassify, text, winner.Name, best, threshold)
		return result, nil
	}
	if runnerUp >= 0 && best-runnerUp < c.cfg.Margin {
		c.l.Debugf(ctx, "%s: ambiguous %q (best %s=%.2f, runner-up %.2f within margin %.2f)",
			LogPrefixClassify, text, winner.Name, best, runnerUp, c.cfg.Margin)
		return result, nil
	}

	result.Matched = true
	result.Intent = winner
	result.Confidence = best
	c.l.Debugf(ctx, "%s: %q classified as %s (confidence %.2f)", LogPrefixClassify, text, winner.Name, best)
	return result, nil
}

// scoreIntent is the max over the intent's examples of a blend of
// whole-string similarity and content-token overlap.
func (c *Lexical) scoreIntent(input nlp.FeatureVector, cand intent.Intent) float64 {
	if input.Empty() {
		return 0
	}

	best := 0.0
	for _, example := range cand.Examples {
		ex := c.extractor.Features(example)
		if ex.Empty() {
			continue
		}

		score := weightSimilarity*nlp.Similarity(input.Normalized, ex.Normalized) +
			weightTokenOverlap*nlp.TokenOverlap(input.Tokens, ex.Tokens)
		if score > best {
			best = score
		}
	}
	return best
}
