package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/davidbz/sophie/internal/domain"
	"github.com/davidbz/sophie/internal/http/middleware"
	"github.com/davidbz/sophie/internal/ledger"
	"github.com/davidbz/sophie/internal/observability"
	"github.com/davidbz/sophie/internal/session"
)

// Handler handles HTTP requests from the UI collaborator.
type Handler struct {
	chat     *domain.ChatService
	sessions *session.Manager
	catalog  domain.Catalog
	reporter *ledger.Reporter
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	chat *domain.ChatService,
	sessions *session.Manager,
	catalog domain.Catalog,
	reporter *ledger.Reporter,
) *Handler {
	return &Handler{
		chat:     chat,
		sessions: sessions,
		catalog:  catalog,
		reporter: reporter,
	}
}

type chatRequest struct {
	Model    string           `json:"model"`
	Message  string           `json:"message"`
	Document *domain.Document `json:"document,omitempty"`
}

type chatResponse struct {
	Reply          domain.Message `json:"reply"`
	Usage          domain.Usage   `json:"usage"`
	Cost           float64        `json:"cost"`
	AwaitingRating bool           `json:"awaiting_rating"`
}

// HandleChat processes one user submission end to end.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	ctx = observability.WithModel(ctx, req.Model)
	logger := observability.FromContext(ctx)
	logger.Info("chat request received",
		zap.String("model", req.Model),
		zap.Bool("document_attached", req.Document != nil),
	)

	sess, err := h.sessions.Get(ctx, user)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	exchange, err := h.chat.Send(ctx, sess, domain.SendInput{
		Model:    req.Model,
		Prompt:   req.Message,
		Document: req.Document,
	})
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	if persistErr := h.sessions.Persist(ctx, sess); persistErr != nil {
		logger.Warn("failed to persist session", zap.Error(persistErr))
	}

	h.writeJSON(w, http.StatusOK, chatResponse{
		Reply:          exchange.Reply,
		Usage:          exchange.Usage,
		Cost:           exchange.Cost,
		AwaitingRating: sess.AwaitingRating(),
	})
}

type feedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// HandleFeedback records a star rating for the last completed exchange.
func (h *Handler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Get(ctx, user)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.chat.SubmitRating(ctx, sess, req.Rating, req.Comment); err != nil {
		if errors.Is(err, domain.ErrNoPendingRating) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if persistErr := h.sessions.Persist(ctx, sess); persistErr != nil {
		observability.FromContext(ctx).Warn("failed to persist session", zap.Error(persistErr))
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleReset clears the conversation and any pending rating state.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	sess, err := h.sessions.Get(ctx, user)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sess.Clear()
	if persistErr := h.sessions.Persist(ctx, sess); persistErr != nil {
		observability.FromContext(ctx).Warn("failed to persist session", zap.Error(persistErr))
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleLogout destroys the session entirely.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Remove(ctx, user); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleModels lists the model catalog for the UI's selector.
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.writeJSON(w, http.StatusOK, map[string]any{
		"models": h.catalog.List(ctx),
	})
}

type historyResponse struct {
	Messages       []domain.Message `json:"messages"`
	AwaitingRating bool             `json:"awaiting_rating"`
}

// HandleHistory returns the session's conversation for rendering.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	sess, err := h.sessions.Get(ctx, user)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, historyResponse{
		Messages:       sess.History(),
		AwaitingRating: sess.AwaitingRating(),
	})
}

// HandleReport serves the aggregate usage/feedback report.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.reporter.Summary(ctx)
	if err != nil {
		observability.FromContext(ctx).Error("failed to build report", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}

// requireUser extracts the identity supplied by the authentication
// collaborator, rejecting the request when absent.
func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	user := r.Header.Get(middleware.UserHeader)
	if user == "" {
		http.Error(w, "missing "+middleware.UserHeader+" header", http.StatusUnauthorized)
		return "", false
	}
	return user, true
}

type errorBody struct {
	Kind    domain.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

// writeChatError renders a failed completion: the error-kind-appropriate
// message takes the place of assistant text, with a status matching the
// kind. No usage record exists for these.
func (h *Handler) writeChatError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrExchangeInFlight) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	kind := domain.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindAuthMissing:
		status = http.StatusUnauthorized
	case domain.KindRateLimited:
		status = http.StatusTooManyRequests
	case domain.KindProvider:
		status = http.StatusBadGateway
	case domain.KindConfiguration, domain.KindUnknown:
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]errorBody{
		"error": {Kind: kind, Message: domain.MessageOf(err)},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
