// Package googlechat adapts Google Chat spaces to the backend contract.
// Inbound events arrive on the Chat app's webhook endpoint and land in the
// shared mailbox; Send posts through the Chat REST API.
package googlechat

import (
	"context"
	"errors"

	"parley/internal/backend"
	"parley/internal/model"
	pkgGchat "parley/pkg/gchat"
	pkgLog "parley/pkg/log"
)

// Dispatcher routes one inbound message toward its channel's conversation.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg model.Message) error
}

// Backend sends through the Google Chat API and receives from the shared
// mailbox the delivery handler feeds.
type Backend struct {
	l       pkgLog.Logger
	client  *pkgGchat.Client
	mailbox *backend.Mailbox
}

var _ backend.Backend = (*Backend)(nil)

// New creates a Google Chat backend over client, receiving from mailbox.
func New(l pkgLog.Logger, client *pkgGchat.Client, mailbox *backend.Mailbox) (*Backend, error) {
	if l == nil {
		return nil, errors.New("logger is required")
	}
	if client == nil {
		return nil, errors.New("chat client is required")
	}
	if mailbox == nil {
		return nil, errors.New("mailbox is required")
	}
	return &Backend{l: l, client: client, mailbox: mailbox}, nil
}
