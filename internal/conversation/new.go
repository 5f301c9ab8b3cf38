package conversation

import (
	"errors"
	"sync"
	"time"

	"parley/internal/backend"
	"parley/internal/classify"
	"parley/internal/model"
	"parley/pkg/log"
)

// State is the session's place in one question's life.
type State string

const (
	StateIdle          State = "idle"
	StateAwaitingReply State = "awaiting_reply"
	StateResolved      State = "resolved"
	StateFailed        State = "failed"
)

// Session binds one backend channel to a classifier and runs questions over
// it: send a prompt, suspend on the reply, classify, clarify on a miss.
// A Session is reusable across questions but holds at most one outstanding
// question at a time; concurrent Ask/Listen calls fail with ErrSessionBusy.
type Session struct {
	l             log.Logger
	backend       backend.Backend
	classifier    classify.Classifier
	channel       model.ChannelID
	maxRetries    int
	clarification string
	replyTimeout  time.Duration

	mu    sync.Mutex
	busy  bool
	state State
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger     log.Logger
	Backend    backend.Backend
	Classifier classify.Classifier
	Channel    model.ChannelID

	// MaxRetries is how many clarification re-prompts follow an
	// unclassified reply. Zero means DefaultMaxRetries; negative disables
	// retries.
	MaxRetries int

	// Clarification is the re-prompt text. Empty means DefaultClarification.
	Clarification string

	// ReplyTimeout bounds each wait for a reply. Zero means no bound.
	ReplyTimeout time.Duration
}

func (c Config) validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Backend == nil {
		return errors.New("backend is required")
	}
	if c.Classifier == nil {
		return errors.New("classifier is required")
	}
	if c.Channel == "" {
		return errors.New("channel is required")
	}
	return nil
}

// New creates a Session bound to cfg.Channel.
func New(cfg Config) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	} else if maxRetries < 0 {
		maxRetries = 0
	}

	clarification := cfg.Clarification
	if clarification == "" {
		clarification = DefaultClarification
	}

	return &Session{
		l:             cfg.Logger,
		backend:       cfg.Backend,
		classifier:    cfg.Classifier,
		channel:       cfg.Channel,
		maxRetries:    maxRetries,
		clarification: clarification,
		replyTimeout:  cfg.ReplyTimeout,
		state:         StateIdle,
	}, nil
}

// Channel returns the channel this session is bound to.
func (s *Session) Channel() model.ChannelID {
	return s.channel
}

// State reports the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// acquire claims the session for one question.
func (s *Session) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrSessionBusy
	}
	s.busy = true
	return nil
}

// release returns the session to Idle, ready for the next question.
func (s *Session) release() {
	s.mu.Lock()
	s.busy = false
	s.state = StateIdle
	s.mu.Unlock()
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
