//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"chat-live/domain/chat"
	"chat-live/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IMessageRepository interface {
	StoreMessage(message DiskMessage) error
	GetMessage(id uuid.UUID) (DiskMessage, error)
	GetThread(userA, userB string) ([]DiskMessage, error)
	CountUnseen(recipientID string) (map[string]int, error)
	MarkThreadSeen(recipientID, senderID string) ([]uuid.UUID, error)
	MarkMessageSeen(recipientID string, id uuid.UUID) (DiskMessage, bool, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

type DiskMessage struct {
	ID          uuid.UUID
	SenderID    string
	RecipientID string
	Text        string
	Image       string
	Seen        bool
	At          time.Time
}

type messageRecord struct {
	ID          string `cbor:"1,keyasint"`
	SenderID    string `cbor:"2,keyasint"`
	RecipientID string `cbor:"3,keyasint"`
	Text        string `cbor:"4,keyasint"`
	Image       string `cbor:"5,keyasint"`
	Seen        bool   `cbor:"6,keyasint"`
	At          int64  `cbor:"7,keyasint"`
}

// Keys:
//
//	msg:{id}                                  the record itself
//	thread:{low}:{high}:{at_padded}:{id}      chronological thread index, value is the id
//	unseen:{recipient}:{sender}:{id}          present while the message is unseen
//
// The 19-digit zero padding keeps lexicographical order equal to chronological order.
func messageKey(id uuid.UUID) []byte {
	return []byte("msg:" + id.String())
}

func threadPrefix(userA, userB string) string {
	return "thread:" + chat.ThreadKey(userA, userB) + ":"
}

func threadKey(m DiskMessage) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s", threadPrefix(m.SenderID, m.RecipientID), m.At.UnixNano(), m.ID))
}

func unseenPrefix(recipientID string) string {
	return "unseen:" + recipientID + ":"
}

func unseenKey(recipientID, senderID string, id uuid.UUID) []byte {
	return []byte(unseenPrefix(recipientID) + senderID + ":" + id.String())
}

// StoreMessage persists the record and its indexes atomically.
func (m MessageRepository) StoreMessage(message DiskMessage) error {
	bytes, err := marshal(fromDiskMessage(message))
	if err != nil {
		return err
	}
	err = update(m.db, func(txn *badger.Txn) error {
		if err := txn.Set(messageKey(message.ID), bytes); err != nil {
			return err
		}
		if err := txn.Set(threadKey(message), []byte(message.ID.String())); err != nil {
			return err
		}
		if message.Seen {
			return nil
		}
		return txn.Set(unseenKey(message.RecipientID, message.SenderID, message.ID), nil)
	})
	return persistenceError(err)
}

func (m MessageRepository) GetMessage(id uuid.UUID) (DiskMessage, error) {
	var message DiskMessage
	err := m.db.View(func(txn *badger.Txn) error {
		var err error
		message, err = getMessage(txn, id)
		return err
	})
	return message, persistenceError(err)
}

// GetThread returns both directions of the conversation, oldest first.
func (m MessageRepository) GetThread(userA, userB string) ([]DiskMessage, error) {
	var messages []DiskMessage
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(threadPrefix(userA, userB))
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var id uuid.UUID
			err := it.Item().Value(func(value []byte) error {
				var err error
				id, err = uuid.ParseBytes(value)
				return err
			})
			if err != nil {
				return err
			}
			message, err := getMessage(txn, id)
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, persistenceError(err)
	}
	return messages, nil
}

// CountUnseen groups the recipient's unseen messages by sender in a single key-only scan.
func (m MessageRepository) CountUnseen(recipientID string) (map[string]int, error) {
	counts := make(map[string]int)
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(unseenPrefix(recipientID))
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rest := strings.TrimPrefix(string(it.Item().Key()), string(prefix))
			senderID, _, ok := strings.Cut(rest, ":")
			if !ok {
				m.log.Warn("Skipping malformed unseen key", "key", string(it.Item().Key()))
				continue
			}
			counts[senderID]++
		}
		return nil
	})
	if err != nil {
		return nil, persistenceError(err)
	}
	return counts, nil
}

// MarkThreadSeen flips every unseen message from sender to recipient.
// It returns the ids that actually changed; an empty result is a valid no-op.
func (m MessageRepository) MarkThreadSeen(recipientID, senderID string) ([]uuid.UUID, error) {
	var flipped []uuid.UUID
	err := update(m.db, func(txn *badger.Txn) error {
		flipped = flipped[:0]
		prefix := []byte(unseenPrefix(recipientID) + senderID + ":")
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		options.Prefix = prefix
		it := txn.NewIterator(options)

		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range keys {
			id, err := uuid.Parse(strings.TrimPrefix(string(key), string(prefix)))
			if err != nil {
				return err
			}
			message, err := getMessage(txn, id)
			if err != nil {
				return err
			}
			if err = setSeen(txn, message); err != nil {
				return err
			}
			flipped = append(flipped, id)
		}
		return nil
	})
	if err != nil {
		return nil, persistenceError(err)
	}
	return flipped, nil
}

// MarkMessageSeen flips one message addressed to recipientID.
// The boolean is false when the message was already seen.
func (m MessageRepository) MarkMessageSeen(recipientID string, id uuid.UUID) (DiskMessage, bool, error) {
	var message DiskMessage
	var flipped bool
	err := update(m.db, func(txn *badger.Txn) error {
		var err error
		message, err = getMessage(txn, id)
		if err != nil {
			return err
		}
		if message.RecipientID != recipientID {
			return errors.ErrMessageNotFound
		}
		if message.Seen {
			flipped = false
			return nil
		}
		flipped = true
		return setSeen(txn, message)
	})
	if err != nil {
		return DiskMessage{}, false, persistenceError(err)
	}
	message.Seen = true
	return message, flipped, nil
}

func getMessage(txn *badger.Txn, id uuid.UUID) (DiskMessage, error) {
	item, err := txn.Get(messageKey(id))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return DiskMessage{}, errors.ErrMessageNotFound
	}
	if err != nil {
		return DiskMessage{}, err
	}
	var record messageRecord
	if err = item.Value(func(value []byte) error {
		return unmarshal(value, &record)
	}); err != nil {
		return DiskMessage{}, err
	}
	return toDiskMessage(record)
}

func setSeen(txn *badger.Txn, message DiskMessage) error {
	message.Seen = true
	bytes, err := marshal(fromDiskMessage(message))
	if err != nil {
		return err
	}
	if err = txn.Set(messageKey(message.ID), bytes); err != nil {
		return err
	}
	return txn.Delete(unseenKey(message.RecipientID, message.SenderID, message.ID))
}

func fromDiskMessage(message DiskMessage) messageRecord {
	return messageRecord{
		ID:          message.ID.String(),
		SenderID:    message.SenderID,
		RecipientID: message.RecipientID,
		Text:        message.Text,
		Image:       message.Image,
		Seen:        message.Seen,
		At:          message.At.UnixNano(),
	}
}

func toDiskMessage(record messageRecord) (DiskMessage, error) {
	parsedID, err := uuid.Parse(record.ID)
	if err != nil {
		return DiskMessage{}, err
	}
	return DiskMessage{
		ID:          parsedID,
		SenderID:    record.SenderID,
		RecipientID: record.RecipientID,
		Text:        record.Text,
		Image:       record.Image,
		Seen:        record.Seen,
		At:          time.Unix(0, record.At).UTC(),
	}, nil
}
