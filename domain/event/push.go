// Package event defines the server to client events carried by the push channel.
package event

import (
	"chat-live/domain/chat"
)

type Name string

const (
	OnlineUsersName  Name = "getOnlineUsers"
	NewMessageName   Name = "newMessage"
	MessagesSeenName Name = "messagesSeen"
)

// PushEvent is anything a Session can deliver.
type PushEvent interface {
	Name() Name
	Payload() any
}

// OnlineUsers carries the full presence set. Clients replace, never merge.
type OnlineUsers struct {
	UserIDs chat.PresenceSet
}

func (e OnlineUsers) Name() Name   { return OnlineUsersName }
func (e OnlineUsers) Payload() any {
	if e.UserIDs == nil {
		return []string{}
	}
	return []string(e.UserIDs)
}

// NewMessage carries the persisted message, generated id included.
type NewMessage struct {
	Message chat.Message
}

func (e NewMessage) Name() Name   { return NewMessageName }
func (e NewMessage) Payload() any { return e.Message }

// MessagesSeen tells a sender that the recipient has seen some of its messages.
type MessagesSeen struct {
	Receipt chat.SeenReceipt
}

func (e MessagesSeen) Name() Name   { return MessagesSeenName }
func (e MessagesSeen) Payload() any { return e.Receipt }

// Frame is the JSON shape written on the wire.
type Frame struct {
	Event Name `json:"event"`
	Data  any  `json:"data"`
}

func ToFrame(e PushEvent) Frame {
	return Frame{Event: e.Name(), Data: e.Payload()}
}
