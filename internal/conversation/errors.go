package conversation

import (
	"errors"
	"fmt"
)

// ErrSessionBusy is returned when Ask or Listen is called while the session
// is already waiting on a reply. One outstanding question per session.
var ErrSessionBusy = errors.New("session is already awaiting a reply")

// NoClassificationError is returned by Ask when every reply, including the
// clarification rounds, stayed unclassified. It carries the last raw reply
// so callers can log it or hand it to a human.
type NoClassificationError struct {
	Text       string   // last reply text that failed to classify
	Candidates []string // names of the intents that were considered
}

func (e *NoClassificationError) Error() string {
	return fmt.Sprintf("could not classify %q as any of %v", e.Text, e.Candidates)
}
