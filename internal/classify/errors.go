package classify

import "errors"

// ErrEmptyCandidates is returned when Classify is called without candidate
// intents. A configuration error: fail fast, never retried.
var ErrEmptyCandidates = errors.New("candidate intent set is empty")
