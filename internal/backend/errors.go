package backend

import (
	"errors"
	"fmt"

	"parley/internal/model"
)

var (
	// ErrReceiveTimeout is returned by Receive when no message arrives
	// within the given bound.
	ErrReceiveTimeout = errors.New("timed out waiting for a message")

	// ErrMailboxFull is returned by Publish when a channel's queue is at
	// capacity. The message is dropped, never partially delivered.
	ErrMailboxFull = errors.New("mailbox queue is full")
)

// Operation names recorded on TransportError.
const (
	OpSend    = "send"
	OpReceive = "receive"
)

// TransportError wraps a platform failure behind a backend-neutral type.
// Use errors.As to detect it and Unwrap to reach the platform error.
type TransportError struct {
	Op      string // "send" or "receive"
	Channel model.ChannelID
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend %s on channel %s: %v", e.Op, e.Channel, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err as a TransportError for the given operation
// and channel.
func NewTransportError(op string, channel model.ChannelID, err error) *TransportError {
	return &TransportError{Op: op, Channel: channel, Err: err}
}
