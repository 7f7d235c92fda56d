package model

import "time"

// Role values for messages sent to the language model.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DisplayMessage types. The display transcript is UI-facing state and uses its
// own vocabulary, distinct from the model-facing roles above.
const (
	DisplayUser = "user"
	DisplayBot  = "bot"
)

// Thread stores metadata about a visible conversation thread.
type Thread struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayMessage is a single entry in a thread's visible transcript. It is
// caller-side state: the assistant core never reads or writes it, it only
// returns plain response text that gets wrapped into one of these.
type DisplayMessage struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "user" or "bot"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// FullThread includes the thread metadata and its transcript.
type FullThread struct {
	Thread
	Messages []DisplayMessage `json:"messages"`
}

// StreamEvent is a single chunk in a streaming response to the client.
// Content carries one reveal increment; Done marks the end of the turn with
// Full holding the committed text (which may be a truncation if the client
// stopped the reveal early).
type StreamEvent struct {
	Content string `json:"content"`
	Done    bool   `json:"done"`
	Full    string `json:"full,omitempty"`
	Error   string `json:"error,omitempty"`
}
