package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPresenceSet_Sorted_Without_Duplicates(t *testing.T) {
	req := require.New(t)

	set := NewPresenceSet([]string{"carol", "alice", "carol", "bob"})

	req.Equal(PresenceSet{"alice", "bob", "carol"}, set)
	req.True(set.Contains("bob"))
	req.False(set.Contains("dave"))
}

func TestThreadKey_Is_Direction_Free(t *testing.T) {
	require.Equal(t, ThreadKey("alice", "bob"), ThreadKey("bob", "alice"))
}

func TestMessage_Counterpart(t *testing.T) {
	req := require.New(t)
	m := Message{SenderID: "alice", RecipientID: "bob"}

	req.Equal("bob", m.Counterpart("alice"))
	req.Equal("alice", m.Counterpart("bob"))
	req.True(m.IsEmpty())
}
