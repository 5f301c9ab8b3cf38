package telegram

import (
	"context"
	"time"

	"parley/internal/backend"
	"parley/internal/model"
)

// Send delivers text to the Telegram chat behind channel.
func (b *Backend) Send(ctx context.Context, channel model.ChannelID, text string) error {
	chatID, err := channelChatID(channel)
	if err != nil {
		return backend.NewTransportError(backend.OpSend, channel, err)
	}

	if err := b.bot.SendMessage(ctx, chatID, text); err != nil {
		return backend.NewTransportError(backend.OpSend, channel, err)
	}
	return nil
}

// Receive returns the next inbound message for channel from the mailbox.
func (b *Backend) Receive(ctx context.Context, channel model.ChannelID, timeout time.Duration) (model.Message, error) {
	return b.mailbox.Next(ctx, channel, timeout)
}
