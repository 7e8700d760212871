package client

import (
	"chat-live/auth"
	"chat-live/domain/chat"
	"chat-live/domain/event"
	"chat-live/errors"
	"chat-live/infrastructure/http/server"
	"chat-live/observability"
	"chat-live/repositories"
	"chat-live/runtime"
	"chat-live/services"
	"context"
	"log/slog"
	"net"
	"slices"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

const password = "ComplexPass123!"

// LiveServerSuite runs the whole server in-process and drives it through the real client.
type LiveServerSuite struct {
	suite.Suite
	db      *badger.DB
	server  *server.Server
	baseURL string
	auth    services.IAuthService
	cancel  context.CancelFunc
}

func TestLiveServerSuite(t *testing.T) {
	suite.Run(t, new(LiveServerSuite))
}

func (s *LiveServerSuite) SetupTest() {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	db, err := badger.Open(badger.DefaultOptions(s.T().TempDir()).WithLoggingLevel(badger.ERROR))
	s.Require().NoError(err)
	s.db = db

	users := repositories.NewUserRepository(db)
	messages := repositories.NewMessageRepository(db, log)
	registry := runtime.NewRegistry()
	presence := runtime.NewPresenceBroadcaster(log, registry, time.Second)
	dispatcher := runtime.NewDispatcher(log, messages, users, registry, nil, time.Second, 2000)
	tracker := runtime.NewUnseenTracker(log, messages)
	tokens := auth.NewTokenIssuer("live-suite-secret", time.Hour)

	chatService := services.NewChatService(log, users, messages, registry, presence, dispatcher, tracker)
	s.auth = services.NewAuthService(log, users, tokens, nil)
	monitoring := observability.NewMonitoringManager(log, func() int { return len(registry.Snapshot()) })
	s.server = server.NewServer(log, chatService, s.auth, tokens, monitoring, server.Options{
		BodyLimit:            1 << 20,
		ConnectionBufferSize: 16,
		WriteTimeout:         time.Second,
		PingInterval:         time.Minute,
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	go func() { _ = s.server.App().Listener(ln) }()
	s.baseURL = "http://" + ln.Addr().String()
}

func (s *LiveServerSuite) TearDownTest() {
	_ = s.server.Shutdown(context.Background())
	_ = s.db.Close()
}

type participant struct {
	user   chat.User
	api    *APIClient
	state  *SyncState
	events chan event.PushEvent
	stop   context.CancelFunc
}

func (s *LiveServerSuite) join(name, email string) *participant {
	_, _, err := s.auth.Signup(chat.SignupCommand{FullName: name, Email: email, Password: password, Bio: "test"})
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	s.T().Cleanup(cancel)
	api := NewAPIClient(s.baseURL, 2*time.Second)
	user, err := api.Login(ctx, email, password)
	s.Require().NoError(err)

	p := &participant{
		user:   user,
		api:    api,
		state:  NewSyncState(logs.GetLoggerFromLevel(slog.LevelDebug), api),
		events: make(chan event.PushEvent, 32),
		stop:   cancel,
	}
	pushURL, err := PushURL(s.baseURL, user.ID, api.Token())
	s.Require().NoError(err)
	go func() {
		_ = NewPushListener(slog.Default(), time.Second).Listen(ctx, pushURL, func(e event.PushEvent) {
			p.state.Handle(ctx, e)
			p.events <- e
		})
	}()
	return p
}

// awaitPresence waits until the participant has been told exactly who is online.
func (s *LiveServerSuite) awaitPresence(p *participant, want ...string) {
	expected := chat.NewPresenceSet(want)
	deadline := time.After(3 * time.Second)
	for {
		select {
		case e := <-p.events:
			if online, ok := e.(event.OnlineUsers); ok && slices.Equal(online.UserIDs, expected) {
				return
			}
		case <-deadline:
			s.FailNow("presence not received", "want %v", expected)
		}
	}
}

func (s *LiveServerSuite) awaitMessage(p *participant) chat.Message {
	deadline := time.After(3 * time.Second)
	for {
		select {
		case e := <-p.events:
			if m, ok := e.(event.NewMessage); ok {
				return m.Message
			}
		case <-deadline:
			s.FailNow("message not received")
		}
	}
}

func (s *LiveServerSuite) Test_Two_Users_Chat() {
	ctx := context.Background()
	alice := s.join("Alice", "alice@example.com")
	s.awaitPresence(alice, alice.user.ID)
	bob := s.join("Bob", "bob@example.com")
	s.awaitPresence(alice, alice.user.ID, bob.user.ID)
	s.awaitPresence(bob, alice.user.ID, bob.user.ID)

	s.Require().NoError(alice.state.Refresh(ctx))
	s.Require().NoError(alice.state.Select(ctx, bob.user.ID))

	// When alice writes to bob who has not opened her thread
	sent, err := alice.state.Send(ctx, "yo", "")
	s.Require().NoError(err)

	received := s.awaitMessage(bob)
	s.Equal(sent.ID, received.ID)
	s.False(received.Seen)
	s.Equal(chat.UnseenMap{alice.user.ID: 1}, bob.state.View().Unseen)

	// When bob opens the thread the message is seen server side
	s.Require().NoError(bob.state.Select(ctx, alice.user.ID))
	thread := bob.state.View().Thread
	s.Require().Len(thread, 1)
	s.True(thread[0].Seen)

	counterparts, err := bob.api.ListCounterparts(ctx)
	s.Require().NoError(err)
	s.Empty(counterparts.Unseen)

	// When bob leaves alice only sees herself
	bob.stop()
	s.awaitPresence(alice, alice.user.ID)
}

func (s *LiveServerSuite) Test_Profile_Update_Is_Visible_To_Others() {
	ctx := context.Background()
	alice := s.join("Alice", "alice@example.com")
	bob := s.join("Bob", "bob@example.com")

	// When alice changes her bio only
	updated, err := alice.api.UpdateProfile(ctx, "", "rides trains", "")
	s.Require().NoError(err)
	s.Equal("Alice", updated.FullName)
	s.Equal("rides trains", updated.Bio)

	// Then bob's sidebar shows it
	counterparts, err := bob.api.ListCounterparts(ctx)
	s.Require().NoError(err)
	s.Require().Len(counterparts.Users, 1)
	s.Equal("rides trains", counterparts.Users[0].Bio)

	// And an empty update is refused
	_, err = alice.api.UpdateProfile(ctx, "", "", "")
	s.ErrorIs(err, errors.ErrInvalidPayload)
}
