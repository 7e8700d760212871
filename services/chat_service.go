//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"chat-live/contract"
	"chat-live/domain/chat"
	"chat-live/domain/event"
	"chat-live/errors"
	"chat-live/repositories"
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IChatService interface {
	ListCounterparts(viewerID string) (chat.Counterparts, error)
	FetchThread(ctx context.Context, cmd chat.FetchThreadCommand) ([]chat.Message, error)
	MarkMessageSeen(ctx context.Context, cmd chat.MarkMessageSeenCommand) error
	SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error)
	Connect(ctx context.Context, userID string, session contract.Session)
	Disconnect(ctx context.Context, userID string, session contract.Session)
	Online() chat.PresenceSet
}

// ChatService is what the transports see: the request/response operations
// and the push-channel lifecycle, both backed by the same runtime.
type ChatService struct {
	log        *slog.Logger
	users      repositories.IUserRepository
	messages   repositories.IMessageRepository
	registry   contract.IRegistry
	presence   contract.IPresenceBroadcaster
	dispatcher contract.IMessageDispatcher
	tracker    contract.IUnseenTracker
}

func NewChatService(log *slog.Logger, users repositories.IUserRepository,
	messages repositories.IMessageRepository, registry contract.IRegistry,
	presence contract.IPresenceBroadcaster, dispatcher contract.IMessageDispatcher,
	tracker contract.IUnseenTracker) *ChatService {
	return &ChatService{
		log:        log,
		users:      users,
		messages:   messages,
		registry:   registry,
		presence:   presence,
		dispatcher: dispatcher,
		tracker:    tracker,
	}
}

// ListCounterparts returns every other known user and the viewer's unseen map.
func (s *ChatService) ListCounterparts(viewerID string) (chat.Counterparts, error) {
	users, err := s.users.ListUsers()
	if err != nil {
		return chat.Counterparts{}, err
	}
	unseen, err := s.tracker.UnseenCountsFor(viewerID)
	if err != nil {
		return chat.Counterparts{}, err
	}
	others := lo.FilterMap(users, func(u repositories.User, _ int) (chat.User, bool) {
		return ToChatUser(u), u.ID != viewerID
	})
	return chat.Counterparts{Users: others, Unseen: unseen}, nil
}

// FetchThread marks everything the counterpart sent as seen, then returns the
// whole conversation so the response already reflects that transition.
func (s *ChatService) FetchThread(ctx context.Context, cmd chat.FetchThreadCommand) ([]chat.Message, error) {
	if cmd.CounterpartID == "" {
		return nil, fmt.Errorf("%w: counterpart is required", errors.ErrInvalidPayload)
	}
	receipt, err := s.tracker.MarkThreadSeen(cmd.ViewerID, cmd.CounterpartID)
	if err != nil {
		return nil, err
	}
	diskMessages, err := s.messages.GetThread(cmd.ViewerID, cmd.CounterpartID)
	if err != nil {
		return nil, err
	}
	s.notifySeen(ctx, receipt)
	return lo.Map(diskMessages, func(dm repositories.DiskMessage, _ int) chat.Message {
		return ToChatMessage(dm)
	}), nil
}

// MarkMessageSeen flips one message. Repeating it succeeds without effect.
func (s *ChatService) MarkMessageSeen(ctx context.Context, cmd chat.MarkMessageSeenCommand) error {
	messageID, err := uuid.Parse(cmd.MessageID)
	if err != nil {
		return fmt.Errorf("%w: message id %q", errors.ErrInvalidPayload, cmd.MessageID)
	}
	receipt, err := s.tracker.MarkMessageSeen(cmd.ViewerID, messageID)
	if err != nil {
		return err
	}
	s.notifySeen(ctx, receipt)
	return nil
}

func (s *ChatService) SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error) {
	return s.dispatcher.Send(ctx, cmd)
}

// Connect installs the session, replacing any previous one, and re-announces presence.
func (s *ChatService) Connect(ctx context.Context, userID string, session contract.Session) {
	if replaced := s.registry.Register(userID, session); replaced {
		s.log.Debug("Previous session superseded", "user_id", userID, "session_id", session.ID())
	}
	s.log.Info("User connected", "user_id", userID, "session_id", session.ID())
	s.presence.Announce(ctx)
}

// Disconnect removes the session if it is still the registered one.
// A disconnect from a superseded session changes nothing and announces nothing.
func (s *ChatService) Disconnect(ctx context.Context, userID string, session contract.Session) {
	if !s.registry.Unregister(userID, session) {
		s.log.Debug("Stale disconnect ignored", "user_id", userID, "session_id", session.ID())
		return
	}
	s.log.Info("User disconnected", "user_id", userID, "session_id", session.ID())
	s.presence.Announce(ctx)
}

func (s *ChatService) Online() chat.PresenceSet {
	return s.registry.Snapshot()
}

func (s *ChatService) notifySeen(ctx context.Context, receipt chat.SeenReceipt) {
	if len(receipt.MessageIDs) == 0 {
		return
	}
	s.dispatcher.Notify(ctx, receipt.SenderID, event.MessagesSeen{Receipt: receipt})
}

func ToChatUser(u repositories.User) chat.User {
	return chat.User{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Bio:        u.Bio,
		ProfilePic: u.ProfilePic,
		CreatedAt:  u.CreatedAt,
	}
}

func ToChatMessage(dm repositories.DiskMessage) chat.Message {
	return chat.Message{
		ID:          dm.ID,
		SenderID:    dm.SenderID,
		RecipientID: dm.RecipientID,
		Text:        dm.Text,
		Image:       dm.Image,
		Seen:        dm.Seen,
		CreatedAt:   dm.At,
	}
}
