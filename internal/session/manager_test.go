package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/sophie/internal/domain"
	"github.com/davidbz/sophie/internal/session"
)

// fakeSnapshotter is an in-memory Snapshotter with an optional failure mode.
type fakeSnapshotter struct {
	snaps   map[string]domain.SessionSnapshot
	loadErr error
}

func newFakeSnapshotter() *fakeSnapshotter {
	return &fakeSnapshotter{snaps: make(map[string]domain.SessionSnapshot)}
}

func (f *fakeSnapshotter) Save(_ context.Context, snap domain.SessionSnapshot) error {
	f.snaps[snap.UserID] = snap
	return nil
}

func (f *fakeSnapshotter) Load(_ context.Context, userID string) (domain.SessionSnapshot, error) {
	if f.loadErr != nil {
		return domain.SessionSnapshot{}, f.loadErr
	}

	snap, exists := f.snaps[userID]
	if !exists {
		return domain.SessionSnapshot{}, session.ErrNoSnapshot
	}
	return snap, nil
}

func (f *fakeSnapshotter) Delete(_ context.Context, userID string) error {
	if _, exists := f.snaps[userID]; !exists {
		return session.ErrNoSnapshot
	}
	delete(f.snaps, userID)
	return nil
}

func TestManager_GetCreates(t *testing.T) {
	ctx := context.Background()
	manager := session.NewManager(nil)

	sess, err := manager.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", sess.UserID())
	require.Empty(t, sess.History())

	// Same user gets the same live session.
	again, err := manager.Get(ctx, "alice")
	require.NoError(t, err)
	require.Same(t, sess, again)

	// Different users are isolated.
	other, err := manager.Get(ctx, "bob")
	require.NoError(t, err)
	require.NotSame(t, sess, other)
}

func TestManager_GetRejectsEmptyUser(t *testing.T) {
	manager := session.NewManager(nil)

	_, err := manager.Get(context.Background(), "")
	require.Error(t, err)
}

func TestManager_RestoreFromSnapshot(t *testing.T) {
	ctx := context.Background()
	snaps := newFakeSnapshotter()
	snaps.snaps["alice"] = domain.SessionSnapshot{
		UserID: "alice",
		Messages: []domain.Message{
			{Role: domain.RoleUser, Content: "hello"},
			{Role: domain.RoleAssistant, Content: "hi", Stats: "cost: $0.00100"},
		},
		State:     domain.StateAwaitingRating,
		LastModel: "model-a",
	}

	manager := session.NewManager(snaps)

	sess, err := manager.Get(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, sess.History(), 2)
	require.True(t, sess.AwaitingRating())
}

func TestManager_BrokenStoreFallsBackToFresh(t *testing.T) {
	ctx := context.Background()
	snaps := newFakeSnapshotter()
	snaps.loadErr = errors.New("store unreachable")

	manager := session.NewManager(snaps)

	sess, err := manager.Get(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, sess.History())
}

// blockingSnapshotter parks every Load on a channel until released.
type blockingSnapshotter struct {
	fakeSnapshotter
	entered chan string
	release chan struct{}
}

func (b *blockingSnapshotter) Load(ctx context.Context, userID string) (domain.SessionSnapshot, error) {
	b.entered <- userID
	<-b.release
	return b.fakeSnapshotter.Load(ctx, userID)
}

func TestManager_SlowStoreDoesNotBlockOtherUsers(t *testing.T) {
	ctx := context.Background()
	snaps := &blockingSnapshotter{
		fakeSnapshotter: *newFakeSnapshotter(),
		entered:         make(chan string, 2),
		release:         make(chan struct{}),
	}
	manager := session.NewManager(snaps)

	type result struct {
		sess *domain.Session
		err  error
	}
	aliceDone := make(chan result, 1)
	go func() {
		sess, err := manager.Get(ctx, "alice")
		aliceDone <- result{sess, err}
	}()

	// Alice is parked inside the store call. Bob's lookup must still
	// proceed into its own store call rather than queueing on the manager.
	require.Equal(t, "alice", <-snaps.entered)

	bobDone := make(chan result, 1)
	go func() {
		sess, err := manager.Get(ctx, "bob")
		bobDone <- result{sess, err}
	}()
	require.Equal(t, "bob", <-snaps.entered)

	close(snaps.release)

	alice := <-aliceDone
	require.NoError(t, alice.err)
	require.Equal(t, "alice", alice.sess.UserID())

	bob := <-bobDone
	require.NoError(t, bob.err)
	require.Equal(t, "bob", bob.sess.UserID())
}

func TestManager_ConcurrentGetSharesOneSession(t *testing.T) {
	ctx := context.Background()
	snaps := &blockingSnapshotter{
		fakeSnapshotter: *newFakeSnapshotter(),
		entered:         make(chan string, 2),
		release:         make(chan struct{}),
	}
	manager := session.NewManager(snaps)

	results := make(chan *domain.Session, 2)
	for j := 0; j < 2; j++ {
		go func() {
			sess, err := manager.Get(ctx, "alice")
			require.NoError(t, err)
			results <- sess
		}()
	}

	// Both requests reach the store before either inserts; the first
	// insert must win and the loser adopt it.
	<-snaps.entered
	<-snaps.entered
	close(snaps.release)

	require.Same(t, <-results, <-results)
}

func TestManager_PersistAndRestore(t *testing.T) {
	ctx := context.Background()
	snaps := newFakeSnapshotter()

	manager := session.NewManager(snaps)
	sess, err := manager.Get(ctx, "alice")
	require.NoError(t, err)

	sess.AppendUser("hello")
	require.NoError(t, manager.Persist(ctx, sess))

	// A second manager simulates a restarted process sharing the store.
	restarted := session.NewManager(snaps)
	restored, err := restarted.Get(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, restored.History(), 1)
	require.Equal(t, "hello", restored.History()[0].Content)
}

func TestManager_PersistWithoutStoreIsNoOp(t *testing.T) {
	manager := session.NewManager(nil)
	require.NoError(t, manager.Persist(context.Background(), domain.NewSession("alice")))
	require.NoError(t, manager.Persist(context.Background(), nil))
}

func TestManager_Remove(t *testing.T) {
	ctx := context.Background()
	snaps := newFakeSnapshotter()
	manager := session.NewManager(snaps)

	sess, err := manager.Get(ctx, "alice")
	require.NoError(t, err)
	sess.AppendUser("hello")
	require.NoError(t, manager.Persist(ctx, sess))

	require.NoError(t, manager.Remove(ctx, "alice"))
	require.Empty(t, snaps.snaps)

	// Next login starts clean.
	fresh, err := manager.Get(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, fresh.History())

	// Removing an absent session is not an error.
	require.NoError(t, manager.Remove(ctx, "nobody"))
}
