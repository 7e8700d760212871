package runtime

import (
	"chat-live/domain/chat"
	"chat-live/repositories"
	"log/slog"

	"github.com/google/uuid"
)

// UnseenTracker owns the seen state machine of persisted messages.
// A message only moves from unseen to seen, and marking it again is a no-op.
type UnseenTracker struct {
	log        *slog.Logger
	repository repositories.IMessageRepository
}

func NewUnseenTracker(log *slog.Logger, repository repositories.IMessageRepository) *UnseenTracker {
	return &UnseenTracker{log: log, repository: repository}
}

// UnseenCountsFor groups the viewer's unseen messages by sender.
// Counterparts with nothing unseen are absent.
func (u *UnseenTracker) UnseenCountsFor(viewerID string) (chat.UnseenMap, error) {
	counts, err := u.repository.CountUnseen(viewerID)
	if err != nil {
		return nil, err
	}
	return chat.UnseenMap(counts), nil
}

// MarkThreadSeen flips every message counterpart sent to viewer.
// The receipt lists only the messages that actually changed.
func (u *UnseenTracker) MarkThreadSeen(viewerID, counterpartID string) (chat.SeenReceipt, error) {
	flipped, err := u.repository.MarkThreadSeen(viewerID, counterpartID)
	if err != nil {
		return chat.SeenReceipt{}, err
	}
	if len(flipped) > 0 {
		u.log.Debug("Thread marked seen",
			"viewer_id", viewerID,
			"counterpart_id", counterpartID,
			"count", len(flipped))
	}
	return chat.SeenReceipt{ViewerID: viewerID, SenderID: counterpartID, MessageIDs: flipped}, nil
}

// MarkMessageSeen flips a single message addressed to viewer.
func (u *UnseenTracker) MarkMessageSeen(viewerID string, messageID uuid.UUID) (chat.SeenReceipt, error) {
	message, flipped, err := u.repository.MarkMessageSeen(viewerID, messageID)
	if err != nil {
		return chat.SeenReceipt{}, err
	}
	receipt := chat.SeenReceipt{ViewerID: viewerID, SenderID: message.SenderID}
	if flipped {
		receipt.MessageIDs = []uuid.UUID{messageID}
	}
	return receipt, nil
}
