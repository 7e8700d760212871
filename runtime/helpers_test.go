package runtime

import (
	"chat-live/domain/event"
	"context"
	"sync"

	"github.com/google/uuid"
)

// recordingSession is an in-memory session that keeps every event it receives.
type recordingSession struct {
	mu     sync.Mutex
	id     string
	events []event.PushEvent
	err    error
}

func newRecordingSession() *recordingSession {
	return &recordingSession{id: uuid.NewString()}
}

func (s *recordingSession) ID() string { return s.id }

func (s *recordingSession) Consume(_ context.Context, e event.PushEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, e)
	return nil
}

func (s *recordingSession) Events() []event.PushEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event.PushEvent(nil), s.events...)
}

func (s *recordingSession) Last() event.PushEvent {
	events := s.Events()
	if len(events) == 0 {
		return nil
	}
	return events[len(events)-1]
}
