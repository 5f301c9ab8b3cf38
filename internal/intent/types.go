package intent

import "strings"

// Intent is a named category a free-text reply can be classified into.
// Treated as immutable once built: constructors copy the example list and
// callers must not mutate it afterwards.
type Intent struct {
	Name      string   // Unique label, e.g. "YES" or a caller-defined name
	Examples  []string // Example utterances the classifier scores against
	Threshold float64  // Optional per-intent confidence override; 0 = classifier default
}

// New builds an Intent from a name and its example utterances.
func New(name string, examples ...string) (Intent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Intent{}, ErrEmptyName
	}
	if len(examples) == 0 {
		return Intent{}, ErrNoExamples
	}

	copied := make([]string, len(examples))
	copy(copied, examples)

	return Intent{Name: name, Examples: copied}, nil
}

// Set is the ordered collection of candidate intents considered for one
// classification call. Order is kept for diagnostics only; ties between
// intents are never broken by position.
type Set []Intent

// NewSet builds a Set, rejecting duplicate names and intents without
// examples. The set borrows the given intents; it is immutable after
// construction so concurrent classification needs no locking.
func NewSet(intents ...Intent) (Set, error) {
	if len(intents) == 0 {
		return nil, ErrEmptySet
	}

	seen := make(map[string]bool, len(intents))
	for _, in := range intents {
		if in.Name == "" {
			return nil, ErrEmptyName
		}
		if len(in.Examples) == 0 {
			return nil, ErrNoExamples
		}
		if seen[in.Name] {
			return nil, ErrDuplicateIntent
		}
		seen[in.Name] = true
	}

	set := make(Set, len(intents))
	copy(set, intents)
	return set, nil
}

// Names returns the intent names in set order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, in := range s {
		names[i] = in.Name
	}
	return names
}
