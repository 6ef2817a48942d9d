// Package session manages per-user conversation session lifecycle: created
// on first use after login, removed on logout, optionally snapshotted to
// Redis so conversations survive a process restart.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/davidbz/sophie/internal/domain"
	"github.com/davidbz/sophie/internal/observability"
)

// ErrNoSnapshot indicates the snapshot store has no entry for a user.
var ErrNoSnapshot = errors.New("no session snapshot")

// Snapshotter persists session snapshots. Implementations must be safe for
// concurrent use. A nil Snapshotter means sessions live in memory only.
type Snapshotter interface {
	Save(ctx context.Context, snap domain.SessionSnapshot) error
	Load(ctx context.Context, userID string) (domain.SessionSnapshot, error)
	Delete(ctx context.Context, userID string) error
}

// Manager owns the live sessions, keyed by user id.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	snaps    Snapshotter
}

// NewManager creates a session manager. snaps may be nil.
func NewManager(snaps Snapshotter) *Manager {
	return &Manager{
		sessions: make(map[string]*domain.Session),
		snaps:    snaps,
	}
}

// Get returns the user's session, restoring it from a snapshot when one
// exists, or creating an empty one. The snapshot fetch happens outside the
// manager lock so one slow store call never stalls other users' lookups.
func (m *Manager) Get(ctx context.Context, userID string) (*domain.Session, error) {
	if userID == "" {
		return nil, errors.New("user id cannot be empty")
	}

	m.mu.Lock()
	if sess, exists := m.sessions[userID]; exists {
		m.mu.Unlock()
		return sess, nil
	}
	m.mu.Unlock()

	var sess *domain.Session
	if m.snaps != nil {
		snap, err := m.snaps.Load(ctx, userID)
		switch {
		case err == nil:
			sess = domain.RestoreSession(snap)
		case errors.Is(err, ErrNoSnapshot):
			// fall through to a fresh session
		default:
			// A broken snapshot store should not lock users out.
			observability.FromContext(ctx).Warn("failed to load session snapshot",
				observability.Error(err))
		}
	}
	if sess == nil {
		sess = domain.NewSession(userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another request may have raced the fetch; the first insert wins so
	// both callers share one session.
	if existing, exists := m.sessions[userID]; exists {
		return existing, nil
	}
	m.sessions[userID] = sess
	return sess, nil
}

// Persist saves the session's current snapshot, when a snapshot store is
// configured. Called after mutating operations.
func (m *Manager) Persist(ctx context.Context, sess *domain.Session) error {
	if sess == nil || m.snaps == nil {
		return nil
	}

	if err := m.snaps.Save(ctx, sess.Snapshot()); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Remove destroys the user's session and its snapshot (logout).
func (m *Manager) Remove(ctx context.Context, userID string) error {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()

	if m.snaps == nil {
		return nil
	}

	if err := m.snaps.Delete(ctx, userID); err != nil && !errors.Is(err, ErrNoSnapshot) {
		return fmt.Errorf("failed to delete session snapshot: %w", err)
	}
	return nil
}
