package event

import (
	"chat-live/domain/chat"
	"encoding/json"
	"fmt"
)

// rawFrame is the client-side view of a Frame, payload still undecoded.
type rawFrame struct {
	Event Name            `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Decode parses a wire frame back into a PushEvent.
func Decode(data []byte) (PushEvent, error) {
	var frame rawFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}
	switch frame.Event {
	case OnlineUsersName:
		var ids []string
		if err := json.Unmarshal(frame.Data, &ids); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", frame.Event, err)
		}
		return OnlineUsers{UserIDs: chat.NewPresenceSet(ids)}, nil
	case NewMessageName:
		var m chat.Message
		if err := json.Unmarshal(frame.Data, &m); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", frame.Event, err)
		}
		return NewMessage{Message: m}, nil
	case MessagesSeenName:
		var r chat.SeenReceipt
		if err := json.Unmarshal(frame.Data, &r); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", frame.Event, err)
		}
		return MessagesSeen{Receipt: r}, nil
	default:
		return nil, fmt.Errorf("unknown event %q", frame.Event)
	}
}
