package model

import (
	"time"

	"github.com/google/uuid"
)

// ChannelID identifies one conversation channel on a backend: a Telegram chat
// ID, a Google Chat space name, or the local terminal.
type ChannelID string

// Direction tells whether a message travels to or from the human.
type Direction string

const (
	DirectionInbound  Direction = "inbound"  // human → bot
	DirectionOutbound Direction = "outbound" // bot → human
)

// User identifies the author of an inbound message as reported by the backend.
type User struct {
	ID        string // Backend-scoped identifier (e.g. "telegram_456", "users/abc")
	Username  string // Handle, if the platform has one
	FirstName string
	LastName  string
}

// FullName returns the user's display name, falling back to the username.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Username
	}
}

// Message is one text payload crossing a backend channel.
type Message struct {
	ID         string    // Unique message ID (uuid)
	Channel    ChannelID // Channel the message belongs to
	Sender     User      // Author (zero value for outbound messages)
	Text       string    // Raw text payload, unnormalized
	Direction  Direction
	ReceivedAt time.Time // When the backend accepted the message
}

// NewInbound builds an inbound Message stamped with a fresh ID and the
// current time.
func NewInbound(channel ChannelID, sender User, text string) Message {
	return Message{
		ID:         uuid.NewString(),
		Channel:    channel,
		Sender:     sender,
		Text:       text,
		Direction:  DirectionInbound,
		ReceivedAt: time.Now(),
	}
}

// Environment names used across config and server wiring.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
