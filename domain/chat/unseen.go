package chat

import "github.com/google/uuid"

// UnseenMap maps a counterpart to the number of its messages the viewer has not seen.
// Absent keys and zero counts mean the same thing.
type UnseenMap map[string]int

// CountUnseen rebuilds a viewer's UnseenMap from persisted messages.
// It is the ground truth that incremental updates must agree with.
func CountUnseen(viewerID string, messages []Message) UnseenMap {
	unseen := make(UnseenMap)
	for _, m := range messages {
		if m.RecipientID == viewerID && !m.Seen {
			unseen[m.SenderID]++
		}
	}
	return unseen
}

// Delivered applies a live message to the map. When the sender's thread is focused
// the message is considered seen and nothing is counted.
func (u UnseenMap) Delivered(m Message, focused string) bool {
	if m.SenderID == focused {
		return false
	}
	u[m.SenderID]++
	return true
}

// Reset clears a counterpart once its thread has been opened.
func (u UnseenMap) Reset(counterpartID string) {
	delete(u, counterpartID)
}

// Equal compares two maps treating zero counts as absent.
func (u UnseenMap) Equal(other UnseenMap) bool {
	for k, v := range u {
		if other[k] != v {
			return false
		}
	}
	for k, v := range other {
		if u[k] != v {
			return false
		}
	}
	return true
}

// Clone copies the map so that callers can hand it out safely.
func (u UnseenMap) Clone() UnseenMap {
	out := make(UnseenMap, len(u))
	for k, v := range u {
		if v > 0 {
			out[k] = v
		}
	}
	return out
}

// SeenReceipt describes messages that flipped to seen in one transition.
type SeenReceipt struct {
	ViewerID   string      `json:"viewerId"`
	SenderID   string      `json:"senderId"`
	MessageIDs []uuid.UUID `json:"messageIds"`
}
