package runtime

import (
	"chat-live/contract"
	"chat-live/domain/chat"
	"chat-live/domain/event"
	"chat-live/errors"
	"chat-live/repositories"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Dispatcher persists messages and then pushes them to the recipient's session.
//
// Persistence is the truth, the push is a latency hint: a push never starts
// before the write succeeded and a push failure never fails the send.
type Dispatcher struct {
	mu            sync.Mutex
	log           *slog.Logger
	repository    repositories.IMessageRepository
	users         repositories.IUserRepository
	registry      contract.IRegistry
	assets        contract.AssetStore
	sinkTimeout   time.Duration
	maxTextLength int
	lastAt        time.Time
	now           func() time.Time
}

func NewDispatcher(log *slog.Logger, repository repositories.IMessageRepository,
	users repositories.IUserRepository, registry contract.IRegistry, assets contract.AssetStore,
	sinkTimeout time.Duration, maxTextLength int) *Dispatcher {
	return &Dispatcher{
		log:           log,
		repository:    repository,
		users:         users,
		registry:      registry,
		assets:        assets,
		sinkTimeout:   sinkTimeout,
		maxTextLength: maxTextLength,
		now:           time.Now,
	}
}

// Send validates, persists and then notifies the recipient if it is online.
// Empty text and image together are accepted.
func (d *Dispatcher) Send(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error) {
	if err := d.check(cmd); err != nil {
		return chat.Message{}, err
	}

	image := cmd.Image
	if image != "" && d.assets != nil {
		ref, err := d.assets.Resolve(ctx, image)
		if err != nil {
			return chat.Message{}, err
		}
		image = ref
	}

	message := chat.Message{
		ID:          uuid.New(),
		SenderID:    cmd.SenderID,
		RecipientID: cmd.RecipientID,
		Text:        cmd.Text,
		Image:       image,
		Seen:        false,
		CreatedAt:   d.nextTimestamp(),
	}
	if err := d.repository.StoreMessage(toDiskMessage(message)); err != nil {
		d.log.Error("Message not persisted, nothing pushed",
			"sender_id", message.SenderID,
			"recipient_id", message.RecipientID,
			"error", err)
		if image != cmd.Image {
			d.discard(image)
		}
		return chat.Message{}, err
	}

	d.Notify(ctx, message.RecipientID, event.NewMessage{Message: message})
	return message, nil
}

// Notify pushes an event to userID's session if one is registered.
// Failures are logged and reported as false, never returned.
// The push outlives the caller's cancellation but not the sink timeout.
func (d *Dispatcher) Notify(ctx context.Context, userID string, e event.PushEvent) bool {
	session, ok := d.registry.Lookup(userID)
	if !ok {
		d.log.Debug("Recipient offline, push skipped", "user_id", userID, "event", e.Name())
		return false
	}
	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.sinkTimeout)
	defer cancel()
	if err := session.Consume(pushCtx, e); err != nil {
		d.log.Warn("Push delivery failed",
			"user_id", userID,
			"session_id", session.ID(),
			"event", e.Name(),
			"error", err)
		return false
	}
	return true
}

// discard drops an image uploaded for a message that was never stored.
func (d *Dispatcher) discard(ref string) {
	if err := d.assets.Discard(ref); err != nil {
		d.log.Warn("Orphan image left behind", "image", ref, "error", err)
	}
}

func (d *Dispatcher) check(cmd chat.SendMessageCommand) error {
	if cmd.SenderID == "" || cmd.RecipientID == "" {
		return fmt.Errorf("%w: sender and recipient are required", errors.ErrInvalidPayload)
	}
	if cmd.SenderID == cmd.RecipientID {
		return errors.ErrSelfMessage
	}
	if d.maxTextLength > 0 {
		if err := validate.Var(cmd.Text, fmt.Sprintf("max=%d", d.maxTextLength)); err != nil {
			return fmt.Errorf("%w: text longer than %d characters", errors.ErrInvalidPayload, d.maxTextLength)
		}
	}
	if d.users == nil {
		return nil
	}
	if _, err := d.users.GetUser(cmd.RecipientID); err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return errors.ErrUnknownRecipient
		}
		return err
	}
	return nil
}

// nextTimestamp hands out strictly increasing creation times so that two
// messages of one process never share a position in a thread.
func (d *Dispatcher) nextTimestamp() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()

	at := d.now().UTC()
	if !at.After(d.lastAt) {
		at = d.lastAt.Add(time.Nanosecond)
	}
	d.lastAt = at
	return at
}

func toDiskMessage(m chat.Message) repositories.DiskMessage {
	return repositories.DiskMessage{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Text:        m.Text,
		Image:       m.Image,
		Seen:        m.Seen,
		At:          m.CreatedAt,
	}
}
