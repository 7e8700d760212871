//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	stderrors "errors"
	"sort"
	"strings"
	"time"

	"chat-live/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IUserRepository interface {
	CreateUser(user User) (string, error)
	GetUserByEmail(email string) (User, error)
	GetUser(id string) (User, error)
	ListUsers() ([]User, error)
	UpdateUser(id string, apply func(user *User)) (User, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// User is the repository representation of an account.
// Only identity and display fields leave the repository layer.
type User struct {
	ID           string
	Email        string
	FullName     string
	Bio          string
	ProfilePic   string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
}

type userRecord struct {
	ID           string   `cbor:"1,keyasint"`
	Email        string   `cbor:"2,keyasint"`
	FullName     string   `cbor:"3,keyasint"`
	Bio          string   `cbor:"4,keyasint"`
	ProfilePic   string   `cbor:"5,keyasint"`
	PasswordHash string   `cbor:"6,keyasint"`
	Roles        []string `cbor:"7,keyasint"`
	CreatedAt    int64    `cbor:"8,keyasint"`
}

// Keys:
//
//	user:{id}        the record
//	email:{email}    lookup index, value is the id
func userKey(id string) []byte {
	return []byte("user:" + id)
}

func emailKey(email string) []byte {
	return []byte("email:" + strings.ToLower(email))
}

// CreateUser persists the user and returns its newly generated ID.
// The password must already be hashed.
func (u UserRepository) CreateUser(user User) (string, error) {
	user.ID = uuid.New().String()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if len(user.Roles) == 0 {
		user.Roles = []string{"user"}
	}
	data, err := marshal(fromUser(user))
	if err != nil {
		return "", err
	}

	err = update(u.db, func(txn *badger.Txn) error {
		if _, err := txn.Get(emailKey(user.Email)); err == nil {
			return errors.ErrUserAlreadyExists
		} else if !stderrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set(emailKey(user.Email), []byte(user.ID)); err != nil {
			return err
		}
		return txn.Set(userKey(user.ID), data)
	})
	if err != nil {
		return "", persistenceError(err)
	}
	return user.ID, nil
}

func (u UserRepository) GetUserByEmail(email string) (User, error) {
	var user User
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey(email))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		user, err = getUser(txn, string(id))
		return err
	})
	return user, persistenceError(err)
}

func (u UserRepository) GetUser(id string) (User, error) {
	var user User
	err := u.db.View(func(txn *badger.Txn) error {
		var err error
		user, err = getUser(txn, id)
		return err
	})
	return user, persistenceError(err)
}

// UpdateUser reads, changes and writes back a user in one transaction.
// Identity fields are kept whatever apply does to them.
func (u UserRepository) UpdateUser(id string, apply func(user *User)) (User, error) {
	var updated User
	err := update(u.db, func(txn *badger.Txn) error {
		current, err := getUser(txn, id)
		if err != nil {
			return err
		}
		updated = current
		apply(&updated)
		updated.ID, updated.Email, updated.CreatedAt = current.ID, current.Email, current.CreatedAt

		data, err := marshal(fromUser(updated))
		if err != nil {
			return err
		}
		return txn.Set(userKey(id), data)
	})
	if err != nil {
		return User{}, persistenceError(err)
	}
	return updated, nil
}

// ListUsers returns every account ordered by display name.
func (u UserRepository) ListUsers() ([]User, error) {
	var users []User
	err := u.db.View(func(txn *badger.Txn) error {
		prefix := []byte("user:")
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record userRecord
			if err := it.Item().Value(func(value []byte) error {
				return unmarshal(value, &record)
			}); err != nil {
				return err
			}
			users = append(users, toUser(record))
		}
		return nil
	})
	if err != nil {
		return nil, persistenceError(err)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].FullName < users[j].FullName
	})
	return users, nil
}

func getUser(txn *badger.Txn, id string) (User, error) {
	item, err := txn.Get(userKey(id))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	var record userRecord
	if err = item.Value(func(value []byte) error {
		return unmarshal(value, &record)
	}); err != nil {
		return User{}, err
	}
	return toUser(record), nil
}

func fromUser(user User) userRecord {
	return userRecord{
		ID:           user.ID,
		Email:        strings.ToLower(user.Email),
		FullName:     user.FullName,
		Bio:          user.Bio,
		ProfilePic:   user.ProfilePic,
		PasswordHash: user.PasswordHash,
		Roles:        user.Roles,
		CreatedAt:    user.CreatedAt.UnixNano(),
	}
}

func toUser(record userRecord) User {
	return User{
		ID:           record.ID,
		Email:        record.Email,
		FullName:     record.FullName,
		Bio:          record.Bio,
		ProfilePic:   record.ProfilePic,
		PasswordHash: record.PasswordHash,
		Roles:        record.Roles,
		CreatedAt:    time.Unix(0, record.CreatedAt).UTC(),
	}
}
