package client

import (
	"chat-live/domain/chat"
	"chat-live/domain/event"
	"chat-live/errors"
	"chat-live/mocks"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newState(t *testing.T) (*SyncState, *mocks.MockChatAPI) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockChatAPI(ctrl)
	return NewSyncState(logs.GetLoggerFromLevel(slog.LevelDebug), api), api
}

func TestSyncState_Refresh_Replaces_Unseen(t *testing.T) {
	req := require.New(t)
	state, api := newState(t)
	ctx := context.Background()

	api.EXPECT().ListCounterparts(ctx).Return(chat.Counterparts{
		Users:  []chat.User{{ID: "bob"}, {ID: "carol"}},
		Unseen: chat.UnseenMap{"bob": 2},
	}, nil)

	req.NoError(state.Refresh(ctx))

	view := state.View()
	req.Len(view.Users, 2)
	req.Equal(chat.UnseenMap{"bob": 2}, view.Unseen)
}

func TestSyncState_Select_Refetches_Whole_Thread_And_Resets_Unseen(t *testing.T) {
	req := require.New(t)
	state, api := newState(t)
	ctx := context.Background()
	fromBob := chat.Message{ID: uuid.New(), SenderID: "bob", RecipientID: "alice", Seen: true}

	// Given one unseen message from bob delivered live
	state.OnNewMessage(ctx, chat.Message{ID: uuid.New(), SenderID: "bob", RecipientID: "alice"})
	req.Equal(chat.UnseenMap{"bob": 1}, state.View().Unseen)

	// When alice opens bob's thread
	api.EXPECT().FetchThread(ctx, "bob").Return([]chat.Message{fromBob}, nil)
	req.NoError(state.Select(ctx, "bob"))

	// Then the thread is the server's and the count is gone
	view := state.View()
	req.Equal("bob", view.Selected)
	req.Equal([]chat.Message{fromBob}, view.Thread)
	req.Empty(view.Unseen)

	// When switching focus the previous thread is not carried over
	api.EXPECT().FetchThread(ctx, "carol").Return(nil, nil)
	req.NoError(state.Select(ctx, "carol"))
	req.Empty(state.View().Thread)
}

func TestSyncState_Focused_Message_Is_Appended_And_Acknowledged(t *testing.T) {
	req := require.New(t)
	state, api := newState(t)
	ctx := context.Background()
	api.EXPECT().FetchThread(ctx, "bob").Return(nil, nil)
	req.NoError(state.Select(ctx, "bob"))

	incoming := chat.Message{ID: uuid.New(), SenderID: "bob", RecipientID: "alice", Text: "yo"}
	api.EXPECT().MarkMessageSeen(ctx, incoming.ID).Return(nil).Times(1)

	state.Handle(ctx, event.NewMessage{Message: incoming})

	view := state.View()
	req.Len(view.Thread, 1)
	req.True(view.Thread[0].Seen)
	req.Empty(view.Unseen)
}

func TestSyncState_Failed_Acknowledge_Keeps_Message(t *testing.T) {
	req := require.New(t)
	state, api := newState(t)
	ctx := context.Background()
	api.EXPECT().FetchThread(ctx, "bob").Return(nil, nil)
	req.NoError(state.Select(ctx, "bob"))

	incoming := chat.Message{ID: uuid.New(), SenderID: "bob", RecipientID: "alice"}
	api.EXPECT().MarkMessageSeen(ctx, incoming.ID).Return(errors.ErrPersistence)

	state.OnNewMessage(ctx, incoming)

	req.Len(state.View().Thread, 1)
}

func TestSyncState_Unfocused_Message_Counts_Without_Acknowledge(t *testing.T) {
	req := require.New(t)
	state, api := newState(t)
	ctx := context.Background()
	api.EXPECT().FetchThread(ctx, "bob").Return(nil, nil)
	req.NoError(state.Select(ctx, "bob"))
	api.EXPECT().MarkMessageSeen(gomock.Any(), gomock.Any()).Times(0)

	state.OnNewMessage(ctx, chat.Message{ID: uuid.New(), SenderID: "carol", RecipientID: "alice"})
	state.OnNewMessage(ctx, chat.Message{ID: uuid.New(), SenderID: "carol", RecipientID: "alice"})

	view := state.View()
	req.Empty(view.Thread)
	req.Equal(chat.UnseenMap{"carol": 2}, view.Unseen)
}

func TestSyncState_Presence_Is_Replaced_Not_Merged(t *testing.T) {
	req := require.New(t)
	state, _ := newState(t)

	state.Handle(context.Background(), event.OnlineUsers{UserIDs: chat.PresenceSet{"alice", "bob"}})
	state.Handle(context.Background(), event.OnlineUsers{UserIDs: chat.PresenceSet{"carol"}})

	req.Equal(chat.PresenceSet{"carol"}, state.View().Online)
}

func TestSyncState_Send_Requires_Selection(t *testing.T) {
	req := require.New(t)
	state, api := newState(t)
	api.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := state.Send(context.Background(), "hi", "")

	req.ErrorIs(err, errors.ErrNoCounterpartSelected)
}

func TestSyncState_Send_Appends_Persisted_Message(t *testing.T) {
	req := require.New(t)
	state, api := newState(t)
	ctx := context.Background()
	api.EXPECT().FetchThread(ctx, "bob").Return(nil, nil)
	req.NoError(state.Select(ctx, "bob"))

	sent := chat.Message{ID: uuid.New(), SenderID: "alice", RecipientID: "bob", Text: "hi"}
	api.EXPECT().SendMessage(ctx, "bob", "hi", "").Return(sent, nil)

	message, err := state.Send(ctx, "hi", "")

	req.NoError(err)
	req.Equal(sent, message)
	req.Equal([]chat.Message{sent}, state.View().Thread)
}

func TestSyncState_Seen_Receipt_Flips_Own_Messages(t *testing.T) {
	req := require.New(t)
	state, api := newState(t)
	ctx := context.Background()
	mine := chat.Message{ID: uuid.New(), SenderID: "alice", RecipientID: "bob"}
	api.EXPECT().FetchThread(ctx, "bob").Return([]chat.Message{mine}, nil)
	req.NoError(state.Select(ctx, "bob"))

	state.Handle(ctx, event.MessagesSeen{Receipt: chat.SeenReceipt{
		ViewerID: "bob", SenderID: "alice", MessageIDs: []uuid.UUID{mine.ID},
	}})

	req.True(state.View().Thread[0].Seen)
}

func TestSyncState_Message_Pushed_During_Fetch_Is_Kept(t *testing.T) {
	req := require.New(t)
	state, api := newState(t)
	ctx := context.Background()
	at := time.Now()
	older := chat.Message{ID: uuid.New(), SenderID: "bob", RecipientID: "alice", Seen: true, CreatedAt: at}
	live := chat.Message{ID: uuid.New(), SenderID: "bob", RecipientID: "alice", Text: "yo", CreatedAt: at.Add(time.Second)}

	// Given a message pushed after the server read the thread but before the answer arrived
	api.EXPECT().MarkMessageSeen(ctx, live.ID).Return(nil)
	api.EXPECT().FetchThread(ctx, "bob").DoAndReturn(func(ctx context.Context, _ string) ([]chat.Message, error) {
		state.OnNewMessage(ctx, live)
		return []chat.Message{older}, nil
	})

	// When alice opens bob's thread
	req.NoError(state.Select(ctx, "bob"))

	// Then the live message survives the refetch, in order and seen
	view := state.View()
	req.Len(view.Thread, 2)
	req.Equal(older.ID, view.Thread[0].ID)
	req.Equal(live.ID, view.Thread[1].ID)
	req.True(view.Thread[1].Seen)
	req.Empty(view.Unseen)
}

func TestSyncState_Message_Pushed_During_Fetch_Is_Not_Duplicated(t *testing.T) {
	req := require.New(t)
	state, api := newState(t)
	ctx := context.Background()
	live := chat.Message{ID: uuid.New(), SenderID: "bob", RecipientID: "alice", Text: "yo", CreatedAt: time.Now()}
	stored := live
	stored.Seen = true

	// Given the fetched thread already contains the pushed message
	api.EXPECT().MarkMessageSeen(ctx, live.ID).Return(nil)
	api.EXPECT().FetchThread(ctx, "bob").DoAndReturn(func(ctx context.Context, _ string) ([]chat.Message, error) {
		state.OnNewMessage(ctx, live)
		return []chat.Message{stored}, nil
	})

	req.NoError(state.Select(ctx, "bob"))

	// Then it appears once, as the server returned it
	req.Equal([]chat.Message{stored}, state.View().Thread)
}
