//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-live/domain/chat"
	"chat-live/domain/event"
	"context"
	"reflect"

	"github.com/google/uuid"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// The supervisor restarts it after a panic or an error
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging during supervision.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Session is the handle of one client's live push-channel connection.
// Two handles are the same session when their IDs are equal.
type Session interface {
	ID() string
	Consume(ctx context.Context, e event.PushEvent) error
}

// IRegistry maps a user to its single active session.
type IRegistry interface {
	Register(userID string, session Session) (replaced bool)
	Unregister(userID string, session Session) (removed bool)
	Lookup(userID string) (Session, bool)
	Snapshot() chat.PresenceSet
	Sessions() map[string]Session
}

type IPresenceBroadcaster interface {
	Announce(ctx context.Context) chat.PresenceSet
}

type IMessageDispatcher interface {
	Send(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error)
	Notify(ctx context.Context, userID string, e event.PushEvent) bool
}

type IUnseenTracker interface {
	UnseenCountsFor(viewerID string) (chat.UnseenMap, error)
	MarkThreadSeen(viewerID, counterpartID string) (chat.SeenReceipt, error)
	MarkMessageSeen(viewerID string, messageID uuid.UUID) (chat.SeenReceipt, error)
}

// AssetStore turns the image field of a send request into a stable reference.
// Discard removes an asset stored by Resolve whose record was never persisted.
type AssetStore interface {
	Resolve(ctx context.Context, image string) (string, error)
	Discard(ref string) error
}
