package domain

import (
	"errors"
	"sync"
)

// RatingState is the feedback-prompt state of a session.
type RatingState string

const (
	// StateIdle means no rating is pending.
	StateIdle RatingState = "idle"

	// StateAwaitingRating means the last completion succeeded and the UI
	// should offer the star-rating prompt.
	StateAwaitingRating RatingState = "awaiting_rating"
)

// ErrExchangeInFlight is returned when a second submission arrives while a
// provider call for the same session is still running.
var ErrExchangeInFlight = errors.New("an exchange is already in flight for this session")

// ErrNoPendingRating is returned when a rating is submitted but no completed
// exchange is awaiting one.
var ErrNoPendingRating = errors.New("no completed exchange is awaiting a rating")

// Session holds one user's ordered conversation history, the attached
// document, and the rating-prompt state machine (Idle -> AwaitingRating ->
// Idle). It is owned by exactly one user; operations are serialized
// internally so a session survives being touched from concurrent requests,
// but the design expects one sequential request cycle per user.
type Session struct {
	mu        sync.Mutex
	userID    string
	messages  []Message
	document  *Document
	state     RatingState
	lastModel string
	inFlight  bool
}

// NewSession creates an empty session for the given user.
func NewSession(userID string) *Session {
	return &Session{
		userID: userID,
		state:  StateIdle,
	}
}

// UserID returns the owning user's stable identity string.
func (s *Session) UserID() string {
	return s.userID
}

// AppendUser appends a user turn to the history.
func (s *Session) AppendUser(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, Message{Role: RoleUser, Content: content})
}

// AppendAssistant appends an assistant turn with its stats caption.
func (s *Session) AppendAssistant(content, stats string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, Message{Role: RoleAssistant, Content: content, Stats: stats})
}

// History returns a copy of the message sequence in append order.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Clear discards all messages and any pending rating state atomically.
// Idempotent. The attached document is kept; detaching is a separate user
// action.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	s.state = StateIdle
	s.lastModel = ""
}

// AttachDocument attaches (or replaces) the document context. A nil document
// detaches.
func (s *Session) AttachDocument(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = doc
}

// Document returns the currently attached document, or nil.
func (s *Session) Document() *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

// BeginExchange marks the session busy for the duration of a provider call.
// Returns ErrExchangeInFlight if a call is already running; the caller must
// not interleave submissions for one session.
func (s *Session) BeginExchange() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return ErrExchangeInFlight
	}
	s.inFlight = true
	return nil
}

// EndExchange releases the in-flight mark.
func (s *Session) EndExchange() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// CompletionSucceeded transitions Idle -> AwaitingRating and remembers which
// model produced the reply being rated.
func (s *Session) CompletionSucceeded(modelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateAwaitingRating
	s.lastModel = modelID
}

// AwaitingRating reports whether the UI should show the rating prompt.
func (s *Session) AwaitingRating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAwaitingRating
}

// RatingSubmitted transitions AwaitingRating -> Idle and returns the model
// the rating applies to. Returns ErrNoPendingRating when idle.
func (s *Session) RatingSubmitted() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingRating {
		return "", ErrNoPendingRating
	}

	model := s.lastModel
	s.state = StateIdle
	s.lastModel = ""
	return model, nil
}

// SessionSnapshot is the serializable state of a session, used by the
// session manager to persist conversations across restarts.
type SessionSnapshot struct {
	UserID    string      `json:"user_id"`
	Messages  []Message   `json:"messages"`
	Document  *Document   `json:"document,omitempty"`
	State     RatingState `json:"state"`
	LastModel string      `json:"last_model,omitempty"`
}

// Snapshot captures the session state. The in-flight mark is transient and
// not captured.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]Message, len(s.messages))
	copy(messages, s.messages)

	return SessionSnapshot{
		UserID:    s.userID,
		Messages:  messages,
		Document:  s.document,
		State:     s.state,
		LastModel: s.lastModel,
	}
}

// RestoreSession rebuilds a session from a snapshot.
func RestoreSession(snap SessionSnapshot) *Session {
	state := snap.State
	if state == "" {
		state = StateIdle
	}

	return &Session{
		userID:    snap.UserID,
		messages:  snap.Messages,
		document:  snap.Document,
		state:     state,
		lastModel: snap.LastModel,
	}
}
