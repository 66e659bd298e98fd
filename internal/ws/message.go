package ws

import "time"

// MessageType discriminates WebSocket messages.
type MessageType string

const (
	// MessageThemeSnapshot is sent once, right after a client connects.
	MessageThemeSnapshot MessageType = "theme.snapshot"
	// MessageThemeApplied follows every load, save, or reset.
	MessageThemeApplied MessageType = "theme.applied"
)

// Message is the envelope for all WebSocket messages.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      ThemeData   `json:"data"`
}

// ThemeData carries CSS custom properties keyed by variable name.
type ThemeData struct {
	Source    string            `json:"source,omitempty"`
	Variables map[string]string `json:"variables"`
}
