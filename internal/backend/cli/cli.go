// Package cli adapts a local terminal to the backend contract: lines typed
// on stdin become inbound messages, Send prints to stdout.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/user"
	"strings"
	"time"

	"parley/internal/backend"
	"parley/internal/model"
	"parley/pkg/log"
)

// Channel is the single channel a terminal exposes.
const Channel = model.ChannelID("cli")

// Backend is a terminal-backed transport. Start launches the stdin reader;
// Send and Receive then satisfy the backend contract for Channel.
type Backend struct {
	l       log.Logger
	in      io.Reader
	out     io.Writer
	mailbox *backend.Mailbox
	sender  model.User
}

var _ backend.Backend = (*Backend)(nil)

// New creates a terminal backend reading from in and writing to out. The
// local OS user becomes the sender identity on inbound messages.
func New(l log.Logger, in io.Reader, out io.Writer) *Backend {
	return &Backend{
		l:       l,
		in:      in,
		out:     out,
		mailbox: backend.NewMailbox(0),
		sender:  localUser(),
	}
}

// Start launches the reader goroutine. Each line read from in is published
// as one inbound message; the goroutine stops at EOF or when ctx is done.
func (b *Backend) Start(ctx context.Context) {
	go func() {
		scanner := bufio.NewScanner(b.in)
		for scanner.Scan() {
			if ctx.Err() != nil {
				return
			}
			msg := model.NewInbound(Channel, b.sender, scanner.Text())
			if err := b.mailbox.Publish(msg); err != nil {
				b.l.Warnf(ctx, "cli: dropping input: %v", err)
			}
		}
		if err := scanner.Err(); err != nil {
			b.l.Errorf(ctx, "cli: reading input: %v", err)
		}
	}()
}

// Send prints text to the terminal, one message per line.
func (b *Backend) Send(ctx context.Context, channel model.ChannelID, text string) error {
	if _, err := fmt.Fprintln(b.out, text); err != nil {
		return backend.NewTransportError(backend.OpSend, channel, err)
	}
	return nil
}

// Receive returns the next line typed on the terminal.
func (b *Backend) Receive(ctx context.Context, channel model.ChannelID, timeout time.Duration) (model.Message, error) {
	return b.mailbox.Next(ctx, channel, timeout)
}

// localUser resolves the OS user for message attribution. Lookup failures
// fall back to an anonymous local identity rather than failing the backend.
func localUser() model.User {
	u, err := user.Current()
	if err != nil {
		return model.User{ID: "local", Username: "local"}
	}

	sender := model.User{ID: u.Uid, Username: u.Username}
	if fields := strings.Fields(u.Name); len(fields) > 0 {
		sender.FirstName = fields[0]
		if len(fields) > 1 {
			sender.LastName = fields[len(fields)-1]
		}
	}
	return sender
}
