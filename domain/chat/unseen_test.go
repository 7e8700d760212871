package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnseenMap_Delivered_Counts_Only_Unfocused_Senders(t *testing.T) {
	req := require.New(t)
	unseen := make(UnseenMap)

	req.True(unseen.Delivered(Message{SenderID: "bob", RecipientID: "alice"}, "carol"))
	req.True(unseen.Delivered(Message{SenderID: "bob", RecipientID: "alice"}, "carol"))
	req.False(unseen.Delivered(Message{SenderID: "carol", RecipientID: "alice"}, "carol"))

	req.Equal(UnseenMap{"bob": 2}, unseen)

	unseen.Reset("bob")
	req.Empty(unseen)
}

func TestUnseenMap_Equal_Treats_Zero_As_Absent(t *testing.T) {
	req := require.New(t)

	req.True(UnseenMap{"bob": 0}.Equal(UnseenMap{}))
	req.True(UnseenMap{}.Equal(nil))
	req.False(UnseenMap{"bob": 1}.Equal(UnseenMap{"bob": 2}))
	req.False(UnseenMap{"bob": 1}.Equal(UnseenMap{"carol": 1}))
}

func TestCountUnseen_Ignores_Outgoing_And_Seen(t *testing.T) {
	req := require.New(t)
	messages := []Message{
		{SenderID: "bob", RecipientID: "alice"},
		{SenderID: "bob", RecipientID: "alice", Seen: true},
		{SenderID: "alice", RecipientID: "bob"},
		{SenderID: "carol", RecipientID: "alice"},
	}

	req.Equal(UnseenMap{"bob": 1, "carol": 1}, CountUnseen("alice", messages))
}

func TestUnseenMap_Clone_Drops_Zero_Counts(t *testing.T) {
	req := require.New(t)
	original := UnseenMap{"bob": 1, "carol": 0}

	clone := original.Clone()
	clone["bob"]++

	req.Equal(UnseenMap{"bob": 2}, clone)
	req.Equal(1, original["bob"])
}
