package runtime

import (
	"chat-live/contract"
	"chat-live/domain/chat"
	"chat-live/domain/event"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
)

// PresenceBroadcaster publishes the full online set to every registered session.
//
// Delivery is fan-out without rollback: a session failing mid-broadcast is
// logged and skipped, the others still receive the event.
// Announces are serialized so that every session queues snapshots in the order
// they were taken; the last one a client receives is always the freshest.
// A stalled session therefore delays the next announce by up to sinkTimeout,
// which should stay well under the message delivery timeout.
type PresenceBroadcaster struct {
	mu          sync.Mutex
	log         *slog.Logger
	registry    contract.IRegistry
	sinkTimeout time.Duration
}

func NewPresenceBroadcaster(log *slog.Logger, registry contract.IRegistry, sinkTimeout time.Duration) *PresenceBroadcaster {
	return &PresenceBroadcaster{log: log, registry: registry, sinkTimeout: sinkTimeout}
}

// Announce takes one snapshot of the registry and pushes it to the sessions it contains.
// It returns the set that was announced.
func (p *PresenceBroadcaster) Announce(ctx context.Context) chat.PresenceSet {
	p.mu.Lock()
	defer p.mu.Unlock()

	sessions := p.registry.Sessions()
	online := chat.NewPresenceSet(lo.Keys(sessions))
	evt := event.OnlineUsers{UserIDs: online}

	var wg sync.WaitGroup
	for userID, session := range sessions {
		wg.Add(1)
		go func(userID string, session contract.Session) {
			defer wg.Done()
			sinkCtx, cancel := context.WithTimeout(ctx, p.sinkTimeout)
			defer cancel()
			if err := session.Consume(sinkCtx, evt); err != nil {
				p.log.Warn("Presence delivery failed",
					"user_id", userID,
					"session_id", session.ID(),
					"error", err)
			}
		}(userID, session)
	}
	wg.Wait()

	p.log.Debug("Presence announced", "online", len(online))
	return online
}
