package googlechat

import (
	"context"
	"time"

	"parley/internal/backend"
	"parley/internal/model"
)

// Send posts text into the Chat space behind channel.
func (b *Backend) Send(ctx context.Context, channel model.ChannelID, text string) error {
	space, err := channelSpace(channel)
	if err != nil {
		return backend.NewTransportError(backend.OpSend, channel, err)
	}

	if _, err := b.client.CreateMessage(ctx, space, text); err != nil {
		return backend.NewTransportError(backend.OpSend, channel, err)
	}
	return nil
}

// Receive returns the next inbound message for channel from the mailbox.
func (b *Backend) Receive(ctx context.Context, channel model.ChannelID, timeout time.Duration) (model.Message, error) {
	return b.mailbox.Next(ctx, channel, timeout)
}
