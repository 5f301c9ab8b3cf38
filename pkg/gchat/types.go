package gchat

// Event types Google Chat delivers to the app's HTTP endpoint.
const (
	EventTypeMessage          = "MESSAGE"
	EventTypeAddedToSpace     = "ADDED_TO_SPACE"
	EventTypeRemovedFromSpace = "REMOVED_FROM_SPACE"
)

// UserTypeBot marks messages authored by Chat apps rather than people.
const UserTypeBot = "BOT"

// Event is the payload Google Chat posts to the app's webhook endpoint.
type Event struct {
	Type      string   `json:"type"`
	EventTime string   `json:"eventTime,omitempty"`
	Message   *Message `json:"message,omitempty"`
	Space     *Space   `json:"space,omitempty"`
	User      *User    `json:"user,omitempty"`
}

// Message is a Google Chat message, as carried in webhook events and returned
// by the create API.
type Message struct {
	Name         string `json:"name,omitempty"`
	Text         string `json:"text,omitempty"`
	ArgumentText string `json:"argumentText,omitempty"`
	Sender       *User  `json:"sender,omitempty"`
	Space        *Space `json:"space,omitempty"`
}

// User identifies a Google Chat member.
type User struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	Type        string `json:"type,omitempty"`
}

// Space is the room or direct-message conversation a message belongs to.
type Space struct {
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}
