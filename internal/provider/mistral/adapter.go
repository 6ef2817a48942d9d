// Package mistral provides an adapter for the Mistral chat API over a plain
// HTTP client.
//
// History strategy: full history is forwarded, with the attached document
// appended to the final user turn under the fixed character budget.
package mistral

import (
	"context"
	"errors"
	"time"

	"github.com/davidbz/sophie/internal/domain"
	"github.com/davidbz/sophie/internal/observability"
)

const providerName = "mistral"

// Provider implements the domain.Provider interface for Mistral.
type Provider struct {
	client  *Client
	name    string
	haveKey bool
}

// NewProvider creates a new Mistral provider.
func NewProvider(config Config) *Provider {
	return &Provider{
		client:  NewClient(config),
		name:    providerName,
		haveKey: config.APIKey != "",
	}
}

// Complete sends a completion request and returns the normalized response.
func (p *Provider) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.Completion, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	if !p.haveKey {
		return nil, domain.NewError(domain.KindAuthMissing, "no Mistral API key is configured")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling Mistral API")

	history := domain.WithDocument(req.Messages, req.Document)
	messages := make([]chatMessage, len(history))
	for i, msg := range history {
		messages[i] = chatMessage{Role: msg.Role, Content: msg.Content}
	}

	resp, err := p.client.Complete(ctx, chatRequest{
		Model:    req.Model,
		Messages: messages,
	})
	if err != nil {
		logger.Error("Mistral API call failed", observability.Error(err))
		return nil, normalizeError(err)
	}

	return p.toDomainCompletion(resp, history), nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// toDomainCompletion normalizes the vendor reply. A response missing its
// usage block is still accepted: input tokens are estimated from the sent
// history, output tokens from the reply, both flagged.
func (p *Provider) toDomainCompletion(resp *chatResponse, history []domain.Message) *domain.Completion {
	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	usage := domain.Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}
	if usage.InputTokens == 0 && usage.OutputTokens == 0 && content != "" {
		usage = domain.Usage{
			InputTokens:  domain.EstimatePromptTokens(history),
			OutputTokens: domain.EstimateTokens(content),
			Estimated:    true,
		}
	}

	return &domain.Completion{
		Content:    content,
		Model:      resp.Model,
		Provider:   p.name,
		Usage:      usage,
		FinishTime: time.Now(),
	}
}

// normalizeError converts transport and status failures into typed domain
// errors.
func normalizeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(domain.KindProvider, "mistral call timed out", err)
	}

	var status *statusError
	if errors.As(err, &status) {
		switch {
		case status.code == 401 || status.code == 403:
			return domain.WrapError(domain.KindAuthMissing, "mistral rejected the configured credential", err)
		case status.code == 429:
			return domain.WrapError(domain.KindRateLimited, "mistral is rate limiting requests", err)
		case status.code >= 500:
			return domain.WrapError(domain.KindProvider, "mistral returned a server error", err)
		default:
			return domain.WrapError(domain.KindProvider, "mistral rejected the request", err)
		}
	}

	return domain.WrapError(domain.KindUnknown, "mistral call failed", err)
}
