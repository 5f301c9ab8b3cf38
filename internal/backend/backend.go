package backend

import (
	"context"
	"time"

	"parley/internal/model"
)

// Backend is the transport a conversation runs over. Implementations adapt
// one platform (CLI, Telegram, Google Chat) to this contract; conversation
// logic never sees platform types.
//
// Send delivers text to the channel. Failures come back as a
// *TransportError; platform error types never leak through.
//
// Receive blocks until the next inbound message for the channel arrives and
// consumes it: a message returned once is never delivered again. Messages
// arrive in per-channel FIFO order. Receive returns ErrReceiveTimeout when
// timeout elapses first (timeout <= 0 means no bound), ctx.Err() on
// cancellation, or a *TransportError on channel failure.
type Backend interface {
	Send(ctx context.Context, channel model.ChannelID, text string) error
	Receive(ctx context.Context, channel model.ChannelID, timeout time.Duration) (model.Message, error)
}
