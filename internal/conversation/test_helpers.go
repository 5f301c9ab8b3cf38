package conversation

import (
	"context"
	"sync"
	"time"

	"parley/internal/backend"
	"parley/internal/classify"
	"parley/internal/intent"
	"parley/internal/model"
	"parley/pkg/nlp"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, args ...any)  {}

// receiveResult is one scripted Receive outcome.
type receiveResult struct {
	msg model.Message
	err error
}

// mockBackend scripts Receive outcomes and records Send calls. With no
// scripted replies left, Receive blocks until ctx is done, signalling
// receiveEntered (when set) each time it starts to block.
type mockBackend struct {
	mu      sync.Mutex
	sent    []string
	channel model.ChannelID
	replies []receiveResult
	sendErr error

	receiveEntered chan struct{}
}

func (b *mockBackend) Send(ctx context.Context, channel model.ChannelID, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.channel = channel
	if b.sendErr != nil {
		return b.sendErr
	}
	b.sent = append(b.sent, text)
	return nil
}

func (b *mockBackend) Receive(ctx context.Context, channel model.ChannelID, timeout time.Duration) (model.Message, error) {
	b.mu.Lock()
	if len(b.replies) > 0 {
		r := b.replies[0]
		b.replies = b.replies[1:]
		b.mu.Unlock()
		return r.msg, r.err
	}
	b.mu.Unlock()

	if b.receiveEntered != nil {
		select {
		case b.receiveEntered <- struct{}{}:
		default:
		}
	}
	<-ctx.Done()
	return model.Message{}, ctx.Err()
}

func (b *mockBackend) sentTexts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.sent))
	copy(out, b.sent)
	return out
}

func textReply(channel model.ChannelID, text string) receiveResult {
	return receiveResult{msg: model.NewInbound(channel, model.User{ID: "u1", Username: "tester"}, text)}
}

func errReply(err error) receiveResult {
	return receiveResult{err: err}
}

// mockClassifier returns a fixed result or error, for exercising paths the
// real classifier cannot produce.
type mockClassifier struct {
	result classify.Result
	err    error
}

func (c *mockClassifier) Classify(ctx context.Context, text string, candidates intent.Set) (classify.Result, error) {
	return c.result, c.err
}

const testChannel = model.ChannelID("chan-test")

// newTestSession wires a Session to the mock backend and the real lexical
// classifier over the built-in intents. The config is always valid, so the
// constructor error is discarded.
func newTestSession(b *mockBackend, overrides func(*Config)) *Session {
	cfg := Config{
		Logger:     &mockLogger{},
		Backend:    b,
		Classifier: classify.New(nlp.NewExtractor(), classify.Config{}, &mockLogger{}),
		Channel:    testChannel,
	}
	if overrides != nil {
		overrides(&cfg)
	}
	sess, _ := New(cfg)
	return sess
}

var _ backend.Backend = (*mockBackend)(nil)
var _ classify.Classifier = (*mockClassifier)(nil)
