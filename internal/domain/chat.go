package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidbz/sophie/internal/observability"
)

// ChatService orchestrates one request/response cycle: append the user turn,
// dispatch to the model's provider, price the reply, append the assistant
// turn, and record the interaction in the usage ledger.
type ChatService struct {
	catalog        Catalog
	registry       ProviderRegistry
	costCalculator CostCalculator
	usage          UsageLedger
	feedback       FeedbackLedger
	callTimeout    time.Duration
}

// NewChatService creates a new chat service (DI constructor).
func NewChatService(
	catalog Catalog,
	registry ProviderRegistry,
	costCalculator CostCalculator,
	usage UsageLedger,
	feedback FeedbackLedger,
	callTimeout time.Duration,
) *ChatService {
	return &ChatService{
		catalog:        catalog,
		registry:       registry,
		costCalculator: costCalculator,
		usage:          usage,
		feedback:       feedback,
		callTimeout:    callTimeout,
	}
}

// SendInput carries one user submission.
type SendInput struct {
	Model    string
	Prompt   string
	Document *Document // optional; replaces the session's attached document
}

// Exchange is the outcome of one successful completion.
type Exchange struct {
	Reply Message `json:"reply"`
	Usage Usage   `json:"usage"`
	Cost  float64 `json:"cost"`
}

// Send runs one exchange against the session. On success the session holds
// the new user and assistant turns, a usage record is written, and the
// session awaits a rating. On failure nothing is written to the usage ledger
// and the returned error carries the failure kind for the UI; the user turn
// stays in the history so the user can see what was asked.
func (c *ChatService) Send(ctx context.Context, sess *Session, input SendInput) (*Exchange, error) {
	if sess == nil {
		return nil, errors.New("session cannot be nil")
	}
	if input.Prompt == "" {
		return nil, errors.New("prompt cannot be empty")
	}

	model, err := c.catalog.Get(ctx, input.Model)
	if err != nil {
		return nil, err
	}

	if beginErr := sess.BeginExchange(); beginErr != nil {
		return nil, beginErr
	}
	defer sess.EndExchange()

	if input.Document != nil {
		sess.AttachDocument(input.Document)
	}
	doc := sess.Document()

	// The stored user turn notes the attachment, as the UI renders history
	// from the session, not from the provider request.
	content := input.Prompt
	if doc != nil && doc.Name != "" {
		content = fmt.Sprintf("%s [attachment: %s]", input.Prompt, doc.Name)
	}
	sess.AppendUser(content)

	provider, err := c.registry.Get(ctx, model.Provider)
	if err != nil {
		return nil, err
	}

	logger := observability.FromContext(ctx)
	logger.Info("dispatching completion",
		observability.String("model", model.ID),
		observability.String("provider", provider.Name()),
		observability.Bool("document_attached", doc != nil),
	)

	completion, err := c.complete(ctx, provider, &CompletionRequest{
		Model:    model.ID,
		Messages: sess.History(),
		Document: doc,
	})
	if err != nil {
		logger.Warn("completion failed",
			observability.String("kind", string(KindOf(err))),
			observability.Error(err),
		)
		return nil, err
	}

	cost, err := c.costCalculator.Calculate(ctx, model.ID, completion.Usage)
	if err != nil {
		return nil, err
	}

	stats := fmt.Sprintf("cost: $%.5f", cost)
	sess.AppendAssistant(completion.Content, stats)
	sess.CompletionSucceeded(model.ID)

	record := UsageRecord{
		Time:  time.Now(),
		User:  sess.UserID(),
		Model: model.ID,
		Cost:  cost,
	}
	if recordErr := c.usage.Record(ctx, record); recordErr != nil {
		// The reply already happened; losing the ledger row is worth a loud
		// log but not a failed exchange.
		logger.Error("failed to record usage", observability.Error(recordErr))
	}

	logger.Info("completion succeeded",
		observability.Int("input_tokens", completion.Usage.InputTokens),
		observability.Int("output_tokens", completion.Usage.OutputTokens),
		observability.Bool("estimated", completion.Usage.Estimated),
		observability.Float64("cost", cost),
	)

	return &Exchange{
		Reply: Message{Role: RoleAssistant, Content: completion.Content, Stats: stats},
		Usage: completion.Usage,
		Cost:  cost,
	}, nil
}

// complete runs the provider call under the configured deadline.
func (c *ChatService) complete(
	ctx context.Context,
	provider Provider,
	req *CompletionRequest,
) (*Completion, error) {
	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}

	completion, err := provider.Complete(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, WrapError(KindProvider, "provider call timed out", err)
		}
		return nil, err
	}

	if completion == nil {
		return nil, NewError(KindProvider, "provider returned an empty completion")
	}

	return completion, nil
}

// SubmitRating records star feedback for the exchange the session is
// awaiting a rating for, then returns the session to idle.
func (c *ChatService) SubmitRating(ctx context.Context, sess *Session, rating int, comment string) error {
	if sess == nil {
		return errors.New("session cannot be nil")
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	model, err := sess.RatingSubmitted()
	if err != nil {
		return err
	}

	record := FeedbackRecord{
		Time:    time.Now(),
		User:    sess.UserID(),
		Model:   model,
		Rating:  rating,
		Comment: comment,
	}
	if recordErr := c.feedback.Record(ctx, record); recordErr != nil {
		return fmt.Errorf("failed to record feedback: %w", recordErr)
	}

	observability.FromContext(ctx).Info("feedback recorded",
		observability.String("model", model),
		observability.Int("rating", rating),
	)

	return nil
}
