package services

import (
	"chat-live/domain/chat"
	"chat-live/domain/event"
	"chat-live/errors"
	"chat-live/mocks"
	"chat-live/repositories"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type chatServiceMocks struct {
	users      *mocks.MockIUserRepository
	messages   *mocks.MockIMessageRepository
	registry   *mocks.MockIRegistry
	presence   *mocks.MockIPresenceBroadcaster
	dispatcher *mocks.MockIMessageDispatcher
	tracker    *mocks.MockIUnseenTracker
}

func newMockedChatService(t *testing.T) (*ChatService, chatServiceMocks) {
	ctrl := gomock.NewController(t)
	m := chatServiceMocks{
		users:      mocks.NewMockIUserRepository(ctrl),
		messages:   mocks.NewMockIMessageRepository(ctrl),
		registry:   mocks.NewMockIRegistry(ctrl),
		presence:   mocks.NewMockIPresenceBroadcaster(ctrl),
		dispatcher: mocks.NewMockIMessageDispatcher(ctrl),
		tracker:    mocks.NewMockIUnseenTracker(ctrl),
	}
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	svc := NewChatService(log, m.users, m.messages, m.registry, m.presence, m.dispatcher, m.tracker)
	return svc, m
}

func TestChatService_ListCounterparts_Excludes_Viewer(t *testing.T) {
	req := require.New(t)
	svc, m := newMockedChatService(t)

	m.users.EXPECT().ListUsers().Return([]repositories.User{
		{ID: "alice", FullName: "Alice"},
		{ID: "bob", FullName: "Bob"},
	}, nil).Times(1)
	m.tracker.EXPECT().UnseenCountsFor("alice").Return(chat.UnseenMap{"bob": 3}, nil).Times(1)

	counterparts, err := svc.ListCounterparts("alice")

	req.NoError(err)
	req.Len(counterparts.Users, 1)
	req.Equal("bob", counterparts.Users[0].ID)
	req.Equal(chat.UnseenMap{"bob": 3}, counterparts.Unseen)
}

func TestChatService_FetchThread_Marks_Seen_Before_Reading(t *testing.T) {
	req := require.New(t)
	svc, m := newMockedChatService(t)
	flipped := uuid.New()
	receipt := chat.SeenReceipt{ViewerID: "bob", SenderID: "alice", MessageIDs: []uuid.UUID{flipped}}

	gomock.InOrder(
		m.tracker.EXPECT().MarkThreadSeen("bob", "alice").Return(receipt, nil),
		m.messages.EXPECT().GetThread("bob", "alice").Return([]repositories.DiskMessage{
			{ID: flipped, SenderID: "alice", RecipientID: "bob", Text: "yo", Seen: true},
		}, nil),
		m.dispatcher.EXPECT().Notify(gomock.Any(), "alice", event.MessagesSeen{Receipt: receipt}).Return(true),
	)

	thread, err := svc.FetchThread(context.Background(), chat.FetchThreadCommand{ViewerID: "bob", CounterpartID: "alice"})

	req.NoError(err)
	req.Len(thread, 1)
	req.True(thread[0].Seen)
}

func TestChatService_FetchThread_Nothing_Flipped_Sends_No_Receipt(t *testing.T) {
	req := require.New(t)
	svc, m := newMockedChatService(t)

	m.tracker.EXPECT().MarkThreadSeen("bob", "alice").Return(chat.SeenReceipt{ViewerID: "bob", SenderID: "alice"}, nil)
	m.messages.EXPECT().GetThread("bob", "alice").Return(nil, nil)
	m.dispatcher.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	thread, err := svc.FetchThread(context.Background(), chat.FetchThreadCommand{ViewerID: "bob", CounterpartID: "alice"})

	req.NoError(err)
	req.Empty(thread)
}

func TestChatService_FetchThread_Storage_Failure(t *testing.T) {
	req := require.New(t)
	svc, m := newMockedChatService(t)

	m.tracker.EXPECT().MarkThreadSeen(gomock.Any(), gomock.Any()).Return(chat.SeenReceipt{}, errors.ErrPersistence)

	_, err := svc.FetchThread(context.Background(), chat.FetchThreadCommand{ViewerID: "bob", CounterpartID: "alice"})

	req.ErrorIs(err, errors.ErrPersistence)
}

func TestChatService_MarkMessageSeen_Rejects_Malformed_Id(t *testing.T) {
	req := require.New(t)
	svc, _ := newMockedChatService(t)

	err := svc.MarkMessageSeen(context.Background(), chat.MarkMessageSeenCommand{ViewerID: "bob", MessageID: "nope"})

	req.ErrorIs(err, errors.ErrInvalidPayload)
}

func TestChatService_Connect_Always_Announces(t *testing.T) {
	svc, m := newMockedChatService(t)
	session := mocks.NewMockSession(gomock.NewController(t))
	session.EXPECT().ID().Return("s1").AnyTimes()

	m.registry.EXPECT().Register("alice", session).Return(true)
	m.presence.EXPECT().Announce(gomock.Any()).Return(chat.PresenceSet{"alice"}).Times(1)

	svc.Connect(context.Background(), "alice", session)
}

func TestChatService_Stale_Disconnect_Does_Not_Announce(t *testing.T) {
	svc, m := newMockedChatService(t)
	session := mocks.NewMockSession(gomock.NewController(t))
	session.EXPECT().ID().Return("old").AnyTimes()

	m.registry.EXPECT().Unregister("alice", session).Return(false)
	m.presence.EXPECT().Announce(gomock.Any()).Times(0)

	svc.Disconnect(context.Background(), "alice", session)
}

func TestChatService_Disconnect_Announces(t *testing.T) {
	svc, m := newMockedChatService(t)
	session := mocks.NewMockSession(gomock.NewController(t))
	session.EXPECT().ID().Return("current").AnyTimes()

	m.registry.EXPECT().Unregister("alice", session).Return(true)
	m.presence.EXPECT().Announce(gomock.Any()).Return(chat.PresenceSet{}).Times(1)

	svc.Disconnect(context.Background(), "alice", session)
}

func TestChatService_SendMessage_Delegates(t *testing.T) {
	req := require.New(t)
	svc, m := newMockedChatService(t)
	cmd := chat.SendMessageCommand{SenderID: "alice", RecipientID: "bob", Text: "yo"}
	sent := chat.Message{ID: uuid.New(), SenderID: "alice", RecipientID: "bob", Text: "yo", CreatedAt: time.Now()}

	m.dispatcher.EXPECT().Send(gomock.Any(), cmd).Return(sent, nil).Times(1)

	message, err := svc.SendMessage(context.Background(), cmd)

	req.NoError(err)
	req.Equal(sent, message)
}
