package client

import (
	"chat-live/domain/chat"
	"chat-live/domain/event"
	"chat-live/errors"
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// SyncState is the client's mirror of the server: the focused counterpart and
// its thread, the unseen map and the presence set.
//
// REST answers are point-in-time truth and replace local state. Presence
// events replace the whole set. Message events append to the open thread or
// bump the sender's unseen count.
type SyncState struct {
	mu       sync.Mutex
	log      *slog.Logger
	api      ChatAPI
	selected string
	thread   []chat.Message
	unseen   chat.UnseenMap
	online   chat.PresenceSet
	users    []chat.User
}

// View is an immutable copy of the state for rendering.
type View struct {
	Selected string
	Thread   []chat.Message
	Unseen   chat.UnseenMap
	Online   chat.PresenceSet
	Users    []chat.User
}

func NewSyncState(log *slog.Logger, api ChatAPI) *SyncState {
	return &SyncState{log: log, api: api, unseen: make(chat.UnseenMap)}
}

// Refresh reloads the counterparts and replaces the unseen map with the server's.
func (s *SyncState) Refresh(ctx context.Context) error {
	counterparts, err := s.api.ListCounterparts(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = counterparts.Users
	s.unseen = counterparts.Unseen.Clone()
	if s.selected != "" {
		s.unseen.Reset(s.selected)
	}
	return nil
}

// Select focuses a counterpart. The thread is always refetched whole.
func (s *SyncState) Select(ctx context.Context, counterpartID string) error {
	s.mu.Lock()
	s.selected = counterpartID
	s.thread = nil
	s.unseen.Reset(counterpartID)
	s.mu.Unlock()

	thread, err := s.api.FetchThread(ctx, counterpartID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected != counterpartID {
		// Focus moved on while the fetch was in flight
		return nil
	}
	s.thread = mergeThread(thread, s.thread)
	s.unseen.Reset(counterpartID)
	return nil
}

// mergeThread keeps what was appended locally while the fetch was in flight
// and missing from the server's answer. The server's copy wins on duplicates.
func mergeThread(fetched, appended []chat.Message) []chat.Message {
	known := lo.SliceToMap(fetched, func(m chat.Message) (uuid.UUID, struct{}) { return m.ID, struct{}{} })
	missing := lo.Filter(appended, func(m chat.Message, _ int) bool {
		_, ok := known[m.ID]
		return !ok
	})
	if len(missing) == 0 {
		return fetched
	}
	merged := append(append([]chat.Message(nil), fetched...), missing...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.Before(merged[j].CreatedAt)
	})
	return merged
}

// Send posts to the focused counterpart and appends the persisted message.
func (s *SyncState) Send(ctx context.Context, text, image string) (chat.Message, error) {
	s.mu.Lock()
	recipient := s.selected
	s.mu.Unlock()
	if recipient == "" {
		return chat.Message{}, errors.ErrNoCounterpartSelected
	}

	message, err := s.api.SendMessage(ctx, recipient, text, image)
	if err != nil {
		return chat.Message{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == recipient {
		s.thread = append(s.thread, message)
	}
	return message, nil
}

// Handle routes a push event to the matching reconciliation.
func (s *SyncState) Handle(ctx context.Context, e event.PushEvent) {
	switch evt := e.(type) {
	case event.OnlineUsers:
		s.OnPresence(evt.UserIDs)
	case event.NewMessage:
		s.OnNewMessage(ctx, evt.Message)
	case event.MessagesSeen:
		s.OnMessagesSeen(evt.Receipt)
	default:
		s.log.Debug("Ignoring push event", "event", e.Name())
	}
}

// OnPresence replaces the presence set. Sets are never merged.
func (s *SyncState) OnPresence(online chat.PresenceSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = chat.NewPresenceSet(online)
}

// OnNewMessage appends a message from the focused counterpart and acknowledges
// it, or counts it as unseen otherwise.
func (s *SyncState) OnNewMessage(ctx context.Context, message chat.Message) {
	s.mu.Lock()
	focused := !s.unseen.Delivered(message, s.selected)
	if focused {
		message.Seen = true
		s.thread = append(s.thread, message)
	}
	s.mu.Unlock()

	if !focused {
		return
	}
	if err := s.api.MarkMessageSeen(ctx, message.ID); err != nil {
		// The next fetch of the thread marks it anyway
		s.log.Warn("Failed to acknowledge message", "message_id", message.ID, "error", err)
	}
}

// OnMessagesSeen flips our own messages in the open thread once the counterpart has read them.
func (s *SyncState) OnMessagesSeen(receipt chat.SeenReceipt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if receipt.ViewerID != s.selected {
		return
	}
	seen := lo.SliceToMap(receipt.MessageIDs, func(id uuid.UUID) (uuid.UUID, struct{}) { return id, struct{}{} })
	for i := range s.thread {
		if _, ok := seen[s.thread[i].ID]; ok {
			s.thread[i].Seen = true
		}
	}
}

func (s *SyncState) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Selected: s.selected,
		Thread:   append([]chat.Message(nil), s.thread...),
		Unseen:   s.unseen.Clone(),
		Online:   append(chat.PresenceSet(nil), s.online...),
		Users:    append([]chat.User(nil), s.users...),
	}
}
