package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"parley/internal/backend"
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

func TestSend_WritesLine(t *testing.T) {
	var out bytes.Buffer
	b := New(&mockLogger{}, strings.NewReader(""), &out)

	if err := b.Send(context.Background(), Channel, "Does it work?"); err != nil {
		t.Fatalf("Send: unexpected error: %v", err)
	}
	if got := out.String(); got != "Does it work?\n" {
		t.Errorf("Send wrote %q, want %q", got, "Does it work?\n")
	}
}

func TestSend_WriteFailure(t *testing.T) {
	b := New(&mockLogger{}, strings.NewReader(""), failingWriter{})

	err := b.Send(context.Background(), Channel, "hello")
	var te *backend.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if te.Op != backend.OpSend {
		t.Errorf("transport error op = %q, want %q", te.Op, backend.OpSend)
	}
}

func TestStartReceive_LinesInOrder(t *testing.T) {
	in := strings.NewReader("first\nsecond\nthird\n")
	b := New(&mockLogger{}, in, &bytes.Buffer{})
	b.Start(context.Background())

	for _, want := range []string{"first", "second", "third"} {
		msg, err := b.Receive(context.Background(), Channel, time.Second)
		if err != nil {
			t.Fatalf("Receive: unexpected error: %v", err)
		}
		if msg.Text != want {
			t.Errorf("Receive = %q, want %q", msg.Text, want)
		}
		if msg.Channel != Channel {
			t.Errorf("message channel = %s, want %s", msg.Channel, Channel)
		}
		if msg.Sender.ID == "" {
			t.Error("inbound message has no sender identity")
		}
	}
}

func TestReceive_Timeout(t *testing.T) {
	b := New(&mockLogger{}, strings.NewReader(""), &bytes.Buffer{})
	b.Start(context.Background())

	_, err := b.Receive(context.Background(), Channel, 20*time.Millisecond)
	if !errors.Is(err, backend.ErrReceiveTimeout) {
		t.Errorf("expected ErrReceiveTimeout, got %v", err)
	}
}

func TestReceive_Cancellation(t *testing.T) {
	b := New(&mockLogger{}, strings.NewReader(""), &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := b.Receive(ctx, Channel, 0)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Receive did not return after cancellation")
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("terminal gone")
}
