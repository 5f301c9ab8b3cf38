// Package telegram adapts Telegram chats to the backend contract. Inbound
// updates arrive over a webhook or GetUpdates polling and land in the shared
// mailbox; Send goes out through the Bot API client.
package telegram

import (
	"context"
	"errors"

	"parley/internal/backend"
	"parley/internal/model"
	pkgLog "parley/pkg/log"
	pkgTelegram "parley/pkg/telegram"
)

// Dispatcher routes one inbound message toward its channel's conversation.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg model.Message) error
}

// Backend sends through the Telegram Bot API and receives from the shared
// mailbox the delivery handler or poller feeds.
type Backend struct {
	l       pkgLog.Logger
	bot     *pkgTelegram.Bot
	mailbox *backend.Mailbox
}

var _ backend.Backend = (*Backend)(nil)

// New creates a Telegram backend over bot, receiving from mailbox.
func New(l pkgLog.Logger, bot *pkgTelegram.Bot, mailbox *backend.Mailbox) (*Backend, error) {
	if l == nil {
		return nil, errors.New("logger is required")
	}
	if bot == nil {
		return nil, errors.New("bot client is required")
	}
	if mailbox == nil {
		return nil, errors.New("mailbox is required")
	}
	return &Backend{l: l, bot: bot, mailbox: mailbox}, nil
}
