package event

import (
	"chat-live/domain/chat"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDecode_New_Message_Frame(t *testing.T) {
	req := require.New(t)
	message := chat.Message{
		ID:          uuid.New(),
		SenderID:    "alice",
		RecipientID: "bob",
		Text:        "yo",
		CreatedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(ToFrame(NewMessage{Message: message}))
	req.NoError(err)

	decoded, err := Decode(data)

	req.NoError(err)
	req.Equal(NewMessage{Message: message}, decoded)
}

func TestDecode_Online_Users_Frame(t *testing.T) {
	req := require.New(t)

	decoded, err := Decode([]byte(`{"event":"getOnlineUsers","data":["bob","alice"]}`))

	req.NoError(err)
	req.Equal(OnlineUsers{UserIDs: chat.PresenceSet{"alice", "bob"}}, decoded)
}

func TestOnlineUsers_Empty_Set_Encodes_As_Array(t *testing.T) {
	req := require.New(t)

	data, err := json.Marshal(ToFrame(OnlineUsers{}))

	req.NoError(err)
	req.JSONEq(`{"event":"getOnlineUsers","data":[]}`, string(data))
}

func TestDecode_Rejects_Unknown_Or_Malformed(t *testing.T) {
	req := require.New(t)

	_, err := Decode([]byte(`{"event":"typing","data":{}}`))
	req.Error(err)

	_, err = Decode([]byte(`not json`))
	req.Error(err)

	_, err = Decode([]byte(`{"event":"newMessage","data":[1,2]}`))
	req.Error(err)
}
