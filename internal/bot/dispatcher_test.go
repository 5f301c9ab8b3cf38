package bot_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"parley/internal/backend"
	"parley/internal/bot"
	"parley/internal/classify"
	"parley/internal/conversation"
	"parley/internal/intent"
	"parley/internal/model"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

// scriptBackend receives from the dispatcher's mailbox, exactly as the real
// backends do, and records what the conversation sends.
type scriptBackend struct {
	mailbox *backend.Mailbox

	mu   sync.Mutex
	sent []string
}

func (b *scriptBackend) Send(ctx context.Context, channel model.ChannelID, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, text)
	return nil
}

func (b *scriptBackend) Receive(ctx context.Context, channel model.ChannelID, timeout time.Duration) (model.Message, error) {
	return b.mailbox.Next(ctx, channel, timeout)
}

type noopClassifier struct{}

func (noopClassifier) Classify(ctx context.Context, text string, candidates intent.Set) (classify.Result, error) {
	return classify.Result{Text: text}, nil
}

var _ backend.Backend = (*scriptBackend)(nil)
var _ classify.Classifier = noopClassifier{}

// ── Test Helpers ───────────────────────────────────────────────────────────

type testEnv struct {
	mailbox    *backend.Mailbox
	backend    *scriptBackend
	dispatcher *bot.Dispatcher
	spawned    atomic.Int32
}

// newTestEnv builds a dispatcher whose sessions talk through a scriptBackend
// wired to the same mailbox the dispatcher publishes into.
func newTestEnv(t *testing.T, handler bot.HandlerFunc) *testEnv {
	t.Helper()

	env := &testEnv{mailbox: backend.NewMailbox(0)}
	env.backend = &scriptBackend{mailbox: env.mailbox}

	d, err := bot.New(bot.Config{
		Logger:  &mockLogger{},
		Mailbox: env.mailbox,
		NewSession: func(channel model.ChannelID) (*conversation.Session, error) {
			return conversation.New(conversation.Config{
				Logger:     &mockLogger{},
				Backend:    env.backend,
				Classifier: noopClassifier{},
				Channel:    channel,
			})
		},
		Handler: func(ctx context.Context, sess *conversation.Session) error {
			env.spawned.Add(1)
			return handler(ctx, sess)
		},
	})
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	env.dispatcher = d
	return env
}

func inbound(channel model.ChannelID, text string) model.Message {
	return model.NewInbound(channel, model.User{ID: "user-1"}, text)
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestDispatch_FirstContactSpawnsHandler(t *testing.T) {
	done := make(chan model.Message, 1)
	env := newTestEnv(t, func(ctx context.Context, sess *conversation.Session) error {
		trigger, err := sess.Listen(ctx)
		if err != nil {
			return err
		}
		done <- trigger
		return sess.Tell(ctx, "hello back")
	})
	env.dispatcher.Start(context.Background())

	if err := env.dispatcher.Dispatch(context.Background(), inbound("chan-1", "hello bot")); err != nil {
		t.Fatalf("Dispatch: unexpected error: %v", err)
	}

	select {
	case trigger := <-done:
		if trigger.Text != "hello bot" || trigger.Channel != "chan-1" {
			t.Errorf("trigger = %+v", trigger)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never saw the trigger message")
	}

	waitFor(t, "handler to unregister", func() bool { return env.dispatcher.Len() == 0 })

	env.backend.mu.Lock()
	defer env.backend.mu.Unlock()
	if len(env.backend.sent) != 1 || env.backend.sent[0] != "hello back" {
		t.Errorf("sent = %v", env.backend.sent)
	}
}

func TestDispatch_RoutesToRunningHandler(t *testing.T) {
	var (
		mu    sync.Mutex
		heard []string
	)
	done := make(chan struct{})
	env := newTestEnv(t, func(ctx context.Context, sess *conversation.Session) error {
		defer close(done)
		for i := 0; i < 2; i++ {
			msg, err := sess.Listen(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			heard = append(heard, msg.Text)
			mu.Unlock()
		}
		return nil
	})
	env.dispatcher.Start(context.Background())

	if err := env.dispatcher.Dispatch(context.Background(), inbound("chan-1", "first")); err != nil {
		t.Fatalf("Dispatch: unexpected error: %v", err)
	}
	if err := env.dispatcher.Dispatch(context.Background(), inbound("chan-1", "second")); err != nil {
		t.Fatalf("Dispatch: unexpected error: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never finished")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(heard) != 2 || heard[0] != "first" || heard[1] != "second" {
		t.Errorf("heard = %v", heard)
	}
	if got := env.spawned.Load(); got != 1 {
		t.Errorf("spawned %d handlers, want 1", got)
	}
}

func TestDispatch_ChannelsGetSeparateHandlers(t *testing.T) {
	var (
		mu       sync.Mutex
		channels = map[model.ChannelID]string{}
	)
	var wg sync.WaitGroup
	wg.Add(4)
	env := newTestEnv(t, func(ctx context.Context, sess *conversation.Session) error {
		defer wg.Done()
		msg, err := sess.Listen(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		channels[sess.Channel()] = msg.Text
		mu.Unlock()
		return nil
	})
	env.dispatcher.Start(context.Background())

	for _, ch := range []model.ChannelID{"a", "b", "c", "d"} {
		if err := env.dispatcher.Dispatch(context.Background(), inbound(ch, "hi "+string(ch))); err != nil {
			t.Fatalf("Dispatch(%s): %v", ch, err)
		}
	}

	waitDone := make(chan struct{})
	go func() { wg.Wait(); close(waitDone) }()
	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("handlers never finished")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(channels) != 4 {
		t.Fatalf("expected 4 channels handled, got %d", len(channels))
	}
	if channels["c"] != "hi c" {
		t.Errorf("channel c heard %q", channels["c"])
	}
	if got := env.spawned.Load(); got != 4 {
		t.Errorf("spawned %d handlers, want 4", got)
	}
}

func TestDispatch_IgnoresOutbound(t *testing.T) {
	env := newTestEnv(t, func(ctx context.Context, sess *conversation.Session) error {
		t.Error("no handler should spawn for outbound messages")
		return nil
	})
	env.dispatcher.Start(context.Background())

	msg := model.Message{Channel: "chan-1", Text: "our own prompt", Direction: model.DirectionOutbound}
	if err := env.dispatcher.Dispatch(context.Background(), msg); err != nil {
		t.Fatalf("Dispatch: unexpected error: %v", err)
	}
	if env.dispatcher.Len() != 0 {
		t.Error("outbound message must not register a handler")
	}
	if env.mailbox.Len("chan-1") != 0 {
		t.Error("outbound message must not be queued")
	}
}

func TestDispatch_HandlerExitDrainsStaleMessages(t *testing.T) {
	release := make(chan struct{})
	env := newTestEnv(t, func(ctx context.Context, sess *conversation.Session) error {
		if _, err := sess.Listen(ctx); err != nil {
			return err
		}
		<-release
		return nil
	})
	env.dispatcher.Start(context.Background())

	if err := env.dispatcher.Dispatch(context.Background(), inbound("chan-1", "trigger")); err != nil {
		t.Fatalf("Dispatch: unexpected error: %v", err)
	}
	waitFor(t, "trigger to be consumed", func() bool { return env.mailbox.Len("chan-1") == 0 })

	// Lands while the handler is still alive but no longer listening.
	if err := env.dispatcher.Dispatch(context.Background(), inbound("chan-1", "straggler")); err != nil {
		t.Fatalf("Dispatch: unexpected error: %v", err)
	}
	if got := env.spawned.Load(); got != 1 {
		t.Fatalf("straggler must not spawn a second handler, spawned = %d", got)
	}

	close(release)
	waitFor(t, "handler cleanup", func() bool { return env.dispatcher.Len() == 0 })

	if n := env.mailbox.Len("chan-1"); n != 0 {
		t.Errorf("stale queue not drained, %d left", n)
	}

	// A fresh message after cleanup starts a fresh conversation.
	if err := env.dispatcher.Dispatch(context.Background(), inbound("chan-1", "trigger again")); err != nil {
		t.Fatalf("Dispatch: unexpected error: %v", err)
	}
	waitFor(t, "second handler", func() bool { return env.spawned.Load() == 2 })
}

func TestDispatch_HandlerPanicIsContained(t *testing.T) {
	env := newTestEnv(t, func(ctx context.Context, sess *conversation.Session) error {
		if _, err := sess.Listen(ctx); err != nil {
			return err
		}
		panic("conversation script bug")
	})
	env.dispatcher.Start(context.Background())

	if err := env.dispatcher.Dispatch(context.Background(), inbound("chan-1", "boom")); err != nil {
		t.Fatalf("Dispatch: unexpected error: %v", err)
	}
	waitFor(t, "panicked handler cleanup", func() bool { return env.dispatcher.Len() == 0 })

	// The channel is usable again afterwards.
	if err := env.dispatcher.Dispatch(context.Background(), inbound("chan-1", "boom again")); err != nil {
		t.Fatalf("Dispatch after panic: unexpected error: %v", err)
	}
	waitFor(t, "handler respawn", func() bool { return env.spawned.Load() == 2 })
}

func TestDispatch_SessionFactoryFailure(t *testing.T) {
	mailbox := backend.NewMailbox(0)
	d, err := bot.New(bot.Config{
		Logger:  &mockLogger{},
		Mailbox: mailbox,
		NewSession: func(channel model.ChannelID) (*conversation.Session, error) {
			return nil, errors.New("no backend for channel")
		},
		Handler: func(ctx context.Context, sess *conversation.Session) error {
			t.Error("handler must not run without a session")
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	d.Start(context.Background())

	if err := d.Dispatch(context.Background(), inbound("chan-1", "hello")); err != nil {
		t.Fatalf("Dispatch: unexpected error: %v", err)
	}
	waitFor(t, "failed handler cleanup", func() bool { return d.Len() == 0 })
	if n := mailbox.Len("chan-1"); n != 0 {
		t.Errorf("queue not drained after factory failure, %d left", n)
	}
}

func TestDispatch_FullQueueFailsFast(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	mailbox := backend.NewMailbox(1)
	sb := &scriptBackend{mailbox: mailbox}
	d, err := bot.New(bot.Config{
		Logger:  &mockLogger{},
		Mailbox: mailbox,
		NewSession: func(channel model.ChannelID) (*conversation.Session, error) {
			return conversation.New(conversation.Config{
				Logger:     &mockLogger{},
				Backend:    sb,
				Classifier: noopClassifier{},
				Channel:    channel,
			})
		},
		Handler: func(ctx context.Context, sess *conversation.Session) error {
			<-release // never consumes its queue
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	d.Start(context.Background())

	if err := d.Dispatch(context.Background(), inbound("chan-1", "fills the queue")); err != nil {
		t.Fatalf("Dispatch: unexpected error: %v", err)
	}

	overflowErr := d.Dispatch(context.Background(), inbound("chan-1", "overflow"))
	if !errors.Is(overflowErr, backend.ErrMailboxFull) {
		t.Errorf("expected ErrMailboxFull, got %v", overflowErr)
	}
}

func TestDispatch_HandlersOutliveRequestContext(t *testing.T) {
	done := make(chan model.Message, 1)
	env := newTestEnv(t, func(ctx context.Context, sess *conversation.Session) error {
		msg, err := sess.Listen(ctx)
		if err != nil {
			return err
		}
		done <- msg
		return nil
	})
	env.dispatcher.Start(context.Background())

	// The webhook request context dies the moment the 200 goes out.
	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := env.dispatcher.Dispatch(reqCtx, inbound("chan-1", "hello")); err != nil {
		t.Fatalf("Dispatch: unexpected error: %v", err)
	}

	select {
	case msg := <-done:
		if msg.Text != "hello" {
			t.Errorf("trigger = %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler died with the request context")
	}
}

func TestNew_Validation(t *testing.T) {
	mailbox := backend.NewMailbox(0)
	factory := func(channel model.ChannelID) (*conversation.Session, error) { return nil, nil }
	handler := func(ctx context.Context, sess *conversation.Session) error { return nil }

	cases := []struct {
		name string
		cfg  bot.Config
	}{
		{"missing logger", bot.Config{Mailbox: mailbox, NewSession: factory, Handler: handler}},
		{"missing mailbox", bot.Config{Logger: &mockLogger{}, NewSession: factory, Handler: handler}},
		{"missing session factory", bot.Config{Logger: &mockLogger{}, Mailbox: mailbox, Handler: handler}},
		{"missing handler", bot.Config{Logger: &mockLogger{}, Mailbox: mailbox, NewSession: factory}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := bot.New(tc.cfg); err == nil {
				t.Error("expected a config error")
			}
		})
	}
}
