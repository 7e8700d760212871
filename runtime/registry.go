// Package runtime holds the process-scoped live state of the chat:
// who is connected, how presence is announced and how messages reach sessions.
// Durable state lives in repositories; nothing here is persisted.
package runtime

import (
	"chat-live/contract"
	"chat-live/domain/chat"
	"sync"
)

// Registry maps a user to its single active session.
// It is the only source of truth for presence.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]contract.Session // map user -> Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]contract.Session),
	}
}

// Register installs the session for userID, replacing any previous one.
// The previous session is not closed here; it simply becomes unreachable.
func (r *Registry) Register(userID string, session contract.Session) (replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, replaced = r.sessions[userID]
	r.sessions[userID] = session
	return replaced
}

// Unregister removes the mapping only when it still points to session.
// A disconnect coming from a superseded session is a no-op.
func (r *Registry) Unregister(userID string, session contract.Session) (removed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[userID]
	if !ok || current.ID() != session.ID() {
		return false
	}
	delete(r.sessions, userID)
	return true
}

func (r *Registry) Lookup(userID string) (contract.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[userID]
	return session, ok
}

// Snapshot returns the current presence set.
func (r *Registry) Snapshot() chat.PresenceSet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userIDs := make([]string, 0, len(r.sessions))
	for userID := range r.sessions {
		userIDs = append(userIDs, userID)
	}
	return chat.NewPresenceSet(userIDs)
}

// Sessions returns a copy of the table, safe to range over without holding the lock.
func (r *Registry) Sessions() map[string]contract.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make(map[string]contract.Session, len(r.sessions))
	for userID, session := range r.sessions {
		sessions[userID] = session
	}
	return sessions
}
