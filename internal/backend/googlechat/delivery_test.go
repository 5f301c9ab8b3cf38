package googlechat_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"

	"parley/internal/backend"
	gcBackend "parley/internal/backend/googlechat"
	"parley/internal/webhook"
	pkgGchat "parley/pkg/gchat"
)

// ── Test Helpers ───────────────────────────────────────────────────────────

func newWebhookEnv(t *testing.T, dispatcher *mockDispatcher, security *webhook.SecurityValidator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := gcBackend.NewHandler(&mockLogger{}, dispatcher, security)
	engine := gin.New()
	engine.POST("/webhooks/googlechat", h.HandleWebhook)
	return engine
}

func chatEvent(text string) pkgGchat.Event {
	return pkgGchat.Event{
		Type: pkgGchat.EventTypeMessage,
		Message: &pkgGchat.Message{
			Name: "spaces/AAAA1234/messages/BBBB.CCCC",
			Text: text,
			Sender: &pkgGchat.User{
				Name:        "users/1234567890",
				DisplayName: "Ada Lovelace",
				Type:        "HUMAN",
			},
			Space: &pkgGchat.Space{Name: "spaces/AAAA1234", Type: "DM"},
		},
	}
}

func postEvent(engine *gin.Engine, event pkgGchat.Event, headers map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(event)
	req, _ := http.NewRequest(http.MethodPost, "/webhooks/googlechat", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestHandleWebhook_DispatchesMessage(t *testing.T) {
	dispatcher := &mockDispatcher{}
	engine := newWebhookEnv(t, dispatcher, webhook.NewSecurityValidator(webhook.SecurityConfig{}))

	w := postEvent(engine, chatEvent("yes it does"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	msgs := dispatcher.dispatched()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 dispatched message, got %d", len(msgs))
	}
	msg := msgs[0]
	if msg.Channel != "spaces/AAAA1234" || msg.Text != "yes it does" || msg.Sender.ID != "users/1234567890" {
		t.Errorf("dispatched message = %+v", msg)
	}
}

func TestHandleWebhook_InvalidJSON(t *testing.T) {
	dispatcher := &mockDispatcher{}
	engine := newWebhookEnv(t, dispatcher, webhook.NewSecurityValidator(webhook.SecurityConfig{}))

	req, _ := http.NewRequest(http.MethodPost, "/webhooks/googlechat", bytes.NewBufferString("{bad json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if len(dispatcher.dispatched()) != 0 {
		t.Error("malformed event must not be dispatched")
	}
}

func TestHandleWebhook_IgnoresLifecycleEvents(t *testing.T) {
	dispatcher := &mockDispatcher{}
	engine := newWebhookEnv(t, dispatcher, webhook.NewSecurityValidator(webhook.SecurityConfig{}))

	ev := chatEvent("hello")
	ev.Type = pkgGchat.EventTypeAddedToSpace

	w := postEvent(engine, ev, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(dispatcher.dispatched()) != 0 {
		t.Error("lifecycle event must not be dispatched")
	}
}

func TestHandleWebhook_IgnoresBotEcho(t *testing.T) {
	dispatcher := &mockDispatcher{}
	engine := newWebhookEnv(t, dispatcher, webhook.NewSecurityValidator(webhook.SecurityConfig{}))

	ev := chatEvent("I am a bot")
	ev.Message.Sender.Type = pkgGchat.UserTypeBot

	w := postEvent(engine, ev, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(dispatcher.dispatched()) != 0 {
		t.Error("bot-authored message must not be dispatched")
	}
}

func TestHandleWebhook_BearerToken(t *testing.T) {
	dispatcher := &mockDispatcher{}
	validator := webhook.NewSecurityValidator(webhook.SecurityConfig{GoogleChatAudience: "123456789"})
	validator.SetTokenValidator(func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != "good-token" || audience != "123456789" {
			return nil, errors.New("invalid token")
		}
		return &idtoken.Payload{
			Claims: map[string]interface{}{"email": "chat@system.gserviceaccount.com"},
		}, nil
	})
	engine := newWebhookEnv(t, dispatcher, validator)

	w := postEvent(engine, chatEvent("yes"), nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", w.Code)
	}

	w = postEvent(engine, chatEvent("yes"), map[string]string{"Authorization": "Bearer forged"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("forged token: expected 401, got %d", w.Code)
	}

	w = postEvent(engine, chatEvent("yes"), map[string]string{"Authorization": "Bearer good-token"})
	if w.Code != http.StatusOK {
		t.Errorf("valid token: expected 200, got %d", w.Code)
	}
	if len(dispatcher.dispatched()) != 1 {
		t.Errorf("expected exactly the authorized event dispatched, got %d", len(dispatcher.dispatched()))
	}
}

func TestHandleWebhook_RateLimit(t *testing.T) {
	dispatcher := &mockDispatcher{}
	engine := newWebhookEnv(t, dispatcher, webhook.NewSecurityValidator(webhook.SecurityConfig{RateLimitPerMin: 10}))

	var throttled bool
	for i := 0; i < 20; i++ {
		w := postEvent(engine, chatEvent("yes"), nil)
		if w.Code == http.StatusTooManyRequests {
			throttled = true
			break
		}
	}
	if !throttled {
		t.Error("expected the sender to be throttled")
	}
}

func TestHandleWebhook_DispatchErrorStillAccepts(t *testing.T) {
	dispatcher := &mockDispatcher{err: backend.ErrMailboxFull}
	engine := newWebhookEnv(t, dispatcher, webhook.NewSecurityValidator(webhook.SecurityConfig{}))

	w := postEvent(engine, chatEvent("yes"), nil)
	if w.Code != http.StatusOK {
		t.Errorf("dispatch failure must still acknowledge to chat, got %d", w.Code)
	}
}
