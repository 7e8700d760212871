// Package chat holds the core concepts of direct messaging between two users:
// messages, their seen state, and the values derived from them.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two users.
// Its field names cross the push channel verbatim.
// Seen only ever moves from false to true.
type Message struct {
	ID          uuid.UUID `json:"id"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	Text        string    `json:"text"`
	Image       string    `json:"image"`
	Seen        bool      `json:"seen"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsEmpty reports whether neither text nor image is set.
// Such messages are still accepted.
func (m Message) IsEmpty() bool {
	return m.Text == "" && m.Image == ""
}

// Counterpart returns the other participant of the message from viewerID's point of view.
func (m Message) Counterpart(viewerID string) string {
	if m.SenderID == viewerID {
		return m.RecipientID
	}
	return m.SenderID
}

// ThreadKey identifies the conversation between two users regardless of direction.
func ThreadKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}
