package bot

import (
	"context"
	"fmt"

	"parley/internal/model"
)

// Start hands the dispatcher its lifecycle context. Handlers run on this
// context rather than the webhook request's, which is cancelled as soon as
// the HTTP response goes out; conversations last much longer than that.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ctx = ctx
}

// Dispatch queues one inbound message for its channel's conversation,
// spawning the channel's handler if none is running. It never blocks on
// conversation logic: a full queue fails fast with ErrMailboxFull.
func (d *Dispatcher) Dispatch(ctx context.Context, msg model.Message) error {
	if msg.Direction != model.DirectionInbound {
		d.l.Debugf(ctx, "%s: ignoring %s message on %s", LogPrefixDispatch, msg.Direction, msg.Channel)
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.mailbox.Publish(msg); err != nil {
		return fmt.Errorf("%s: %w", LogPrefixDispatch, err)
	}

	if _, running := d.active[msg.Channel]; !running {
		d.active[msg.Channel] = struct{}{}
		go d.runHandler(d.ctx, msg.Channel)
	}
	return nil
}

// Active reports the channels with a running handler.
func (d *Dispatcher) Active() []model.ChannelID {
	d.mu.Lock()
	defer d.mu.Unlock()
	channels := make([]model.ChannelID, 0, len(d.active))
	for ch := range d.active {
		channels = append(channels, ch)
	}
	return channels
}

// Len reports how many handlers are running.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.active)
}

// runHandler owns one channel's conversation from first contact until the
// script returns. On exit the channel is unregistered and its queue drained,
// so a reply that straggles in after the conversation ended cannot leak into
// the next one as a stale answer.
func (d *Dispatcher) runHandler(ctx context.Context, channel model.ChannelID) {
	defer func() {
		if r := recover(); r != nil {
			d.l.Errorf(ctx, "%s: panic on %s: %v", LogPrefixHandler, channel, r)
		}

		d.mu.Lock()
		if stale := d.mailbox.Len(channel); stale > 0 {
			d.l.Warnf(ctx, "%s: dropping %d stale message(s) on %s", LogPrefixHandler, stale, channel)
		}
		d.mailbox.Reset(channel)
		delete(d.active, channel)
		d.mu.Unlock()
	}()

	sess, err := d.newSession(channel)
	if err != nil {
		d.l.Errorf(ctx, "%s: session for %s: %v", LogPrefixHandler, channel, err)
		return
	}

	d.l.Debugf(ctx, "%s: conversation started on %s", LogPrefixHandler, channel)
	if err := d.handler(ctx, sess); err != nil {
		d.l.Errorf(ctx, "%s: conversation on %s: %v", LogPrefixHandler, channel, err)
		return
	}
	d.l.Debugf(ctx, "%s: conversation finished on %s", LogPrefixHandler, channel)
}
