package client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushURL(t *testing.T) {
	req := require.New(t)

	u, err := PushURL("http://localhost:5000", "alice", "tok")
	req.NoError(err)
	req.Equal("ws://localhost:5000/ws?token=tok&userId=alice", u)

	u, err = PushURL("https://chat.example.com/", "bob", "x")
	req.NoError(err)
	req.Equal("wss://chat.example.com/ws?token=x&userId=bob", u)
}
