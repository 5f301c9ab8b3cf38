package intent

import "errors"

// Configuration errors for the intent package. All of them indicate a
// programmer error: they are surfaced immediately and never retried.
var (
	ErrEmptyName       = errors.New("intent name is empty")
	ErrNoExamples      = errors.New("intent has no example utterances")
	ErrEmptySet        = errors.New("intent set is empty")
	ErrDuplicateIntent = errors.New("duplicate intent name")
	ErrUnknownIntent   = errors.New("intent not registered")
)
