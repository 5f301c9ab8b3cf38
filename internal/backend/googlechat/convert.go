package googlechat

import (
	"fmt"
	"strings"

	"parley/internal/model"
	pkgGchat "parley/pkg/gchat"
)

// spaceChannel maps a Chat space resource name onto a backend channel.
func spaceChannel(spaceName string) model.ChannelID {
	return model.ChannelID(spaceName)
}

// channelSpace checks that the channel is a Chat space resource name.
func channelSpace(channel model.ChannelID) (string, error) {
	space := string(channel)
	if !strings.HasPrefix(space, "spaces/") {
		return "", fmt.Errorf("channel %q is not a chat space name", channel)
	}
	return space, nil
}

// toInbound converts one Chat event into an inbound message. The second
// return is false for events that carry no user text: lifecycle events
// (ADDED_TO_SPACE, REMOVED_FROM_SPACE), empty messages, and messages
// authored by Chat apps, which would otherwise echo our own prompts back
// into the conversation. In rooms Chat strips the @-mention into
// ArgumentText; that is preferred over the raw text when present.
func toInbound(event pkgGchat.Event) (model.Message, bool) {
	if event.Type != pkgGchat.EventTypeMessage || event.Message == nil {
		return model.Message{}, false
	}

	msg := event.Message
	space := msg.Space
	if space == nil {
		space = event.Space
	}
	if space == nil || space.Name == "" {
		return model.Message{}, false
	}

	text := msg.Text
	if msg.ArgumentText != "" {
		text = msg.ArgumentText
	}
	if strings.TrimSpace(text) == "" {
		return model.Message{}, false
	}

	if msg.Sender != nil && msg.Sender.Type == pkgGchat.UserTypeBot {
		return model.Message{}, false
	}

	sender := model.User{}
	if msg.Sender != nil {
		sender = model.User{
			ID:       msg.Sender.Name,
			Username: msg.Sender.Email,
		}
		if fields := strings.Fields(msg.Sender.DisplayName); len(fields) > 0 {
			sender.FirstName = fields[0]
			if len(fields) > 1 {
				sender.LastName = fields[len(fields)-1]
			}
		}
	}

	return model.NewInbound(spaceChannel(space.Name), sender, text), true
}
