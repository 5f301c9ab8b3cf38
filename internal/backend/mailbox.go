package backend

import (
	"context"
	"sync"
	"time"

	"parley/internal/model"
)

// DefaultMailboxCapacity bounds each channel's queue when New is given a
// non-positive capacity.
const DefaultMailboxCapacity = 64

// Mailbox buffers inbound messages per channel for push-style backends.
// Delivery handlers Publish as messages arrive; Backend.Receive drains via
// Next. Each channel's queue is a buffered Go channel, which gives FIFO
// order and consume-once delivery for free.
type Mailbox struct {
	mu       sync.RWMutex
	queues   map[model.ChannelID]chan model.Message
	capacity int
}

// NewMailbox creates a Mailbox whose per-channel queues hold up to capacity
// messages. Non-positive capacity falls back to DefaultMailboxCapacity.
func NewMailbox(capacity int) *Mailbox {
	if capacity <= 0 {
		capacity = DefaultMailboxCapacity
	}
	return &Mailbox{
		queues:   make(map[model.ChannelID]chan model.Message),
		capacity: capacity,
	}
}

// Publish enqueues msg for its channel without blocking. A full queue drops
// the message and returns ErrMailboxFull; the caller decides whether that is
// fatal.
func (m *Mailbox) Publish(msg model.Message) error {
	q := m.queue(msg.Channel)
	select {
	case q <- msg:
		return nil
	default:
		return ErrMailboxFull
	}
}

// Next blocks until a message for the channel is available and consumes it.
// It returns ErrReceiveTimeout when timeout (> 0) elapses first, or ctx.Err()
// on cancellation. With timeout <= 0 it waits until a message or ctx done.
func (m *Mailbox) Next(ctx context.Context, channel model.ChannelID, timeout time.Duration) (model.Message, error) {
	q := m.queue(channel)

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case msg := <-q:
		return msg, nil
	case <-expired:
		return model.Message{}, ErrReceiveTimeout
	case <-ctx.Done():
		return model.Message{}, ctx.Err()
	}
}

// Reset discards any queued messages for the channel. Readers blocked in
// Next stay blocked; they hold the same queue and see only messages
// published after the reset.
func (m *Mailbox) Reset(channel model.ChannelID) {
	m.mu.RLock()
	q, ok := m.queues[channel]
	m.mu.RUnlock()
	if !ok {
		return
	}

	for {
		select {
		case <-q:
		default:
			return
		}
	}
}

// Len reports how many messages are queued for the channel.
func (m *Mailbox) Len(channel model.ChannelID) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if q, ok := m.queues[channel]; ok {
		return len(q)
	}
	return 0
}

// queue returns the channel's queue, creating it on first contact.
func (m *Mailbox) queue(channel model.ChannelID) chan model.Message {
	m.mu.RLock()
	q, ok := m.queues[channel]
	m.mu.RUnlock()
	if ok {
		return q
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if q, ok := m.queues[channel]; ok {
		return q
	}
	q = make(chan model.Message, m.capacity)
	m.queues[channel] = q
	return q
}
