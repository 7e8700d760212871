package repositories

import (
	stderrors "errors"
	"fmt"

	"chat-live/errors"

	"github.com/dgraph-io/badger/v4"
)

const maxConflictRetries = 3

// update runs fn in a read-write transaction, retrying when a concurrent
// transaction touched the same keys. Seen transitions are idempotent so
// replaying them is safe.
func update(db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for i := 0; i < maxConflictRetries; i++ {
		err = db.Update(fn)
		if !stderrors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

// persistenceError keeps domain errors intact and tags storage failures.
func persistenceError(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		errors.ErrMessageNotFound,
		errors.ErrUserNotFound,
		errors.ErrUserAlreadyExists,
	} {
		if stderrors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", errors.ErrPersistence, err)
}
