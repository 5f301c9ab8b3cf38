package telegram

import (
	"testing"

	"parley/internal/model"
	pkgTelegram "parley/pkg/telegram"
)

func TestChannelChatID(t *testing.T) {
	if got := chatChannel(-100123); got != model.ChannelID("-100123") {
		t.Errorf("chatChannel(-100123) = %q", got)
	}

	chatID, err := channelChatID("42")
	if err != nil || chatID != 42 {
		t.Errorf("channelChatID(42) = (%d, %v)", chatID, err)
	}

	if _, err := channelChatID("space/AAA"); err == nil {
		t.Error("expected error for a non-telegram channel")
	}
}

func TestToInbound(t *testing.T) {
	base := func() pkgTelegram.Update {
		return pkgTelegram.Update{
			UpdateID: 1,
			Message: &pkgTelegram.Message{
				MessageID: 10,
				Chat:      &pkgTelegram.Chat{ID: 123, Type: "private"},
				From:      &pkgTelegram.User{ID: 456, FirstName: "Ada", LastName: "Lovelace", Username: "ada"},
				Text:      "yes please",
			},
		}
	}

	t.Run("text message", func(t *testing.T) {
		msg, ok := toInbound(base())
		if !ok {
			t.Fatal("expected a message")
		}
		if msg.Channel != "123" {
			t.Errorf("channel = %q, want %q", msg.Channel, "123")
		}
		if msg.Text != "yes please" {
			t.Errorf("text = %q", msg.Text)
		}
		if msg.Sender.ID != "telegram_456" || msg.Sender.Username != "ada" {
			t.Errorf("sender = %+v", msg.Sender)
		}
		if msg.Direction != model.DirectionInbound {
			t.Errorf("direction = %q", msg.Direction)
		}
		if msg.ID == "" {
			t.Error("message has no id")
		}
	})

	t.Run("non-message update skipped", func(t *testing.T) {
		if _, ok := toInbound(pkgTelegram.Update{UpdateID: 2}); ok {
			t.Error("expected skip")
		}
	})

	t.Run("empty text skipped", func(t *testing.T) {
		u := base()
		u.Message.Text = ""
		if _, ok := toInbound(u); ok {
			t.Error("expected skip for sticker/photo updates")
		}
	})

	t.Run("bot author skipped", func(t *testing.T) {
		u := base()
		u.Message.From.IsBot = true
		if _, ok := toInbound(u); ok {
			t.Error("expected bot echo to be skipped")
		}
	})

	t.Run("missing sender tolerated", func(t *testing.T) {
		u := base()
		u.Message.From = nil
		msg, ok := toInbound(u)
		if !ok {
			t.Fatal("expected a message")
		}
		if msg.Sender.ID != "" {
			t.Errorf("sender should be zero, got %+v", msg.Sender)
		}
	})
}
