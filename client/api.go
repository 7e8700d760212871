//go:generate go run go.uber.org/mock/mockgen -source=api.go -destination=../mocks/mock_api.go -package=mocks
package client

import (
	"chat-live/domain/chat"
	"context"

	"github.com/google/uuid"
)

// ChatAPI is the request/response surface the client state relies on.
type ChatAPI interface {
	ListCounterparts(ctx context.Context) (chat.Counterparts, error)
	FetchThread(ctx context.Context, counterpartID string) ([]chat.Message, error)
	MarkMessageSeen(ctx context.Context, messageID uuid.UUID) error
	SendMessage(ctx context.Context, recipientID, text, image string) (chat.Message, error)
}
