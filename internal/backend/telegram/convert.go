package telegram

import (
	"fmt"
	"strconv"

	"parley/internal/model"
	pkgTelegram "parley/pkg/telegram"
)

// chatChannel maps a Telegram chat ID onto a backend channel.
func chatChannel(chatID int64) model.ChannelID {
	return model.ChannelID(strconv.FormatInt(chatID, 10))
}

// channelChatID parses the chat ID back out of a channel.
func channelChatID(channel model.ChannelID) (int64, error) {
	chatID, err := strconv.ParseInt(string(channel), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("channel %q is not a telegram chat id: %w", channel, err)
	}
	return chatID, nil
}

// toInbound converts one update into an inbound message. The second return
// is false for updates that carry no user text: non-message updates, empty
// text (stickers, photos) and messages authored by bots, which would
// otherwise echo our own prompts back into the conversation.
func toInbound(update pkgTelegram.Update) (model.Message, bool) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return model.Message{}, false
	}
	if msg.From != nil && msg.From.IsBot {
		return model.Message{}, false
	}

	sender := model.User{}
	if msg.From != nil {
		sender = model.User{
			ID:        fmt.Sprintf("telegram_%d", msg.From.ID),
			Username:  msg.From.Username,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
		}
	}

	return model.NewInbound(chatChannel(msg.Chat.ID), sender, msg.Text), true
}
