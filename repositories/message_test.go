package repositories

import (
	"log/slog"
	"testing"
	"time"

	"chat-live/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newDiskMessage(from, to, text string, at time.Time) DiskMessage {
	return DiskMessage{ID: uuid.New(), SenderID: from, RecipientID: to, Text: text, At: at}
}

func Test_Store_And_Get_Thread_In_Chronological_Order(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	at := time.Now().UTC()

	// Given messages in both directions, stored out of order
	second := newDiskMessage("bob", "alice", "fine and you?", at.Add(time.Minute))
	first := newDiskMessage("alice", "bob", "how are you?", at)
	third := newDiskMessage("alice", "bob", "great", at.Add(2*time.Minute))
	other := newDiskMessage("alice", "clara", "unrelated", at)
	for _, dm := range []DiskMessage{second, third, first, other} {
		req.NoError(repository.StoreMessage(dm))
	}

	// When fetching the thread from either side
	fromAlice, err := repository.GetThread("alice", "bob")
	req.NoError(err)
	fromBob, err := repository.GetThread("bob", "alice")
	req.NoError(err)

	// Then both views are identical and sorted
	req.Equal([]DiskMessage{first, second, third}, fromAlice)
	req.Equal(fromAlice, fromBob)
}

func Test_Empty_Message_Is_Persisted(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	message := newDiskMessage("alice", "bob", "", time.Now().UTC())

	req.NoError(repository.StoreMessage(message))

	fetched, err := repository.GetMessage(message.ID)
	req.NoError(err)
	req.Equal(message, fetched)
}

func Test_CountUnseen_Groups_By_Sender(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	at := time.Now().UTC()

	for i := 0; i < 3; i++ {
		req.NoError(repository.StoreMessage(newDiskMessage("alice", "bob", "hi", at.Add(time.Duration(i)*time.Second))))
	}
	req.NoError(repository.StoreMessage(newDiskMessage("clara", "bob", "hey", at)))
	req.NoError(repository.StoreMessage(newDiskMessage("bob", "alice", "not for bob", at)))

	counts, err := repository.CountUnseen("bob")
	req.NoError(err)
	req.Equal(map[string]int{"alice": 3, "clara": 1}, counts)
}

func Test_MarkThreadSeen_Flips_Only_That_Direction(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	at := time.Now().UTC()

	// Given three unseen messages from alice to bob and one from bob to alice
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		dm := newDiskMessage("alice", "bob", "hi", at.Add(time.Duration(i)*time.Second))
		ids = append(ids, dm.ID)
		req.NoError(repository.StoreMessage(dm))
	}
	reply := newDiskMessage("bob", "alice", "yo", at.Add(time.Hour))
	req.NoError(repository.StoreMessage(reply))

	// When bob opens the thread
	flipped, err := repository.MarkThreadSeen("bob", "alice")
	req.NoError(err)

	// Then all three are seen and bob has nothing left to read from alice
	req.ElementsMatch(ids, flipped)
	thread, err := repository.GetThread("alice", "bob")
	req.NoError(err)
	for _, dm := range thread {
		req.Equal(dm.SenderID == "alice", dm.Seen)
	}
	counts, err := repository.CountUnseen("bob")
	req.NoError(err)
	req.Empty(counts)

	// And alice still has bob's reply unseen
	counts, err = repository.CountUnseen("alice")
	req.NoError(err)
	req.Equal(map[string]int{"bob": 1}, counts)

	// When bob opens it again, nothing changes
	flipped, err = repository.MarkThreadSeen("bob", "alice")
	req.NoError(err)
	req.Empty(flipped)
}

func Test_MarkMessageSeen_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	message := newDiskMessage("alice", "bob", "hi", time.Now().UTC())
	req.NoError(repository.StoreMessage(message))

	seen, flipped, err := repository.MarkMessageSeen("bob", message.ID)
	req.NoError(err)
	req.True(flipped)
	req.True(seen.Seen)

	seen, flipped, err = repository.MarkMessageSeen("bob", message.ID)
	req.NoError(err)
	req.False(flipped)
	req.True(seen.Seen)

	counts, err := repository.CountUnseen("bob")
	req.NoError(err)
	req.Empty(counts)
}

func Test_MarkMessageSeen_Rejects_Other_Viewers_And_Unknown_Ids(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	message := newDiskMessage("alice", "bob", "hi", time.Now().UTC())
	req.NoError(repository.StoreMessage(message))

	_, _, err := repository.MarkMessageSeen("clara", message.ID)
	req.ErrorIs(err, errors.ErrMessageNotFound)

	_, _, err = repository.MarkMessageSeen("bob", uuid.New())
	req.ErrorIs(err, errors.ErrMessageNotFound)

	fetched, err := repository.GetMessage(message.ID)
	req.NoError(err)
	req.False(fetched.Seen)
}

func Test_Closed_Store_Reports_Persistence_Failure(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	repository := NewMessageRepository(db, slog.Default())
	req.NoError(db.Close())

	err = repository.StoreMessage(newDiskMessage("alice", "bob", "hi", time.Now().UTC()))
	req.ErrorIs(err, errors.ErrPersistence)
}
