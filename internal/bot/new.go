// Package bot routes inbound backend traffic into per-channel conversations.
// The first message on a channel spawns a handler goroutine running the
// configured conversation script; messages arriving while it runs are
// delivered to the same channel's mailbox queue, where the script's session
// picks them up as replies.
package bot

import (
	"context"
	"errors"
	"sync"

	"parley/internal/backend"
	"parley/internal/conversation"
	"parley/internal/model"
	pkgLog "parley/pkg/log"
)

// SessionFactory builds the conversation session a new channel's handler
// will talk through.
type SessionFactory func(channel model.ChannelID) (*conversation.Session, error)

// HandlerFunc is one conversation from the bot's side, run on its own
// goroutine per channel. The message that woke the channel up is the first
// thing the session's Listen returns.
type HandlerFunc func(ctx context.Context, sess *conversation.Session) error

// Dispatcher fans inbound messages out to per-channel conversation handlers.
type Dispatcher struct {
	l          pkgLog.Logger
	mailbox    *backend.Mailbox
	newSession SessionFactory
	handler    HandlerFunc

	mu     sync.Mutex
	active map[model.ChannelID]struct{}
	ctx    context.Context
}

// Config is the dependency bag for the dispatcher.
type Config struct {
	Logger     pkgLog.Logger
	Mailbox    *backend.Mailbox
	NewSession SessionFactory
	Handler    HandlerFunc
}

func (c Config) validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Mailbox == nil {
		return errors.New("mailbox is required")
	}
	if c.NewSession == nil {
		return errors.New("session factory is required")
	}
	if c.Handler == nil {
		return errors.New("handler is required")
	}
	return nil
}

// New creates a dispatcher. Call Start before dispatching.
func New(cfg Config) (*Dispatcher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Dispatcher{
		l:          cfg.Logger,
		mailbox:    cfg.Mailbox,
		newSession: cfg.NewSession,
		handler:    cfg.Handler,
		active:     make(map[model.ChannelID]struct{}),
		ctx:        context.Background(),
	}, nil
}
