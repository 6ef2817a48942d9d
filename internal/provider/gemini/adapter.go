// Package gemini provides an adapter for Google Gemini via its
// OpenAI-compatible endpoint, reusing the official OpenAI SDK with a base
// URL override.
//
// History strategy: this adapter sends a reduced context consisting of only
// the latest user turn plus the attached document, not the full history.
// This mirrors the restrictive history semantics the deployment observed on
// this vendor and is a deliberate per-provider inconsistency; the OpenAI and
// Mistral adapters forward full history.
package gemini

import (
	"context"
	"errors"
	"time"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/davidbz/sophie/internal/domain"
	"github.com/davidbz/sophie/internal/observability"
	"github.com/davidbz/sophie/internal/provider/openai"
)

const providerName = "google"

// Provider implements the domain.Provider interface for Gemini.
type Provider struct {
	client  sdk.Client
	name    string
	haveKey bool
}

// NewProvider creates a new Gemini provider. As with the OpenAI adapter, a
// missing key surfaces as AuthMissing per call rather than a startup error.
func NewProvider(config Config) *Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	if config.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(config.MaxRetries))
	}

	return &Provider{
		client:  sdk.NewClient(opts...),
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
		return nil, domain.NewError(domain.KindAuthMissing, "no Gemini API key is configured")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling Gemini API")

	reduced := domain.WithDocument(latestUserTurn(req.Messages), req.Document)

	resp, err := p.client.Chat.Completions.New(ctx, p.toSDKParams(req.Model, reduced))
	if err != nil {
		logger.Error("Gemini API call failed", observability.Error(err))
		return nil, openai.NormalizeError(providerName, err)
	}

	return p.toDomainCompletion(resp, reduced), nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// toSDKParams builds the request from the reduced context: latest user turn
// plus document only.
func (p *Provider) toSDKParams(model string, reduced []domain.Message) sdk.ChatCompletionNewParams {
	messages := make([]sdk.ChatCompletionMessageParamUnion, len(reduced))
	for i, msg := range reduced {
		messages[i] = sdk.UserMessage(msg.Content)
	}

	return sdk.ChatCompletionNewParams{
		Model:    sdk.ChatModel(model),
		Messages: messages,
	}
}

// The input estimate covers only the reduced context actually sent, the
// output estimate the reply.
func (p *Provider) toDomainCompletion(resp *sdk.ChatCompletion, reduced []domain.Message) *domain.Completion {
	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	usage := domain.Usage{
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
	}
	if usage.InputTokens == 0 && usage.OutputTokens == 0 && content != "" {
		usage = domain.Usage{
			InputTokens:  domain.EstimatePromptTokens(reduced),
			OutputTokens: domain.EstimateTokens(content),
			Estimated:    true,
		}
	}

	return &domain.Completion{
		Content:    content,
		Model:      string(resp.Model),
		Provider:   p.name,
		Usage:      usage,
		FinishTime: time.Now(),
	}
}

// latestUserTurn returns a one-element slice holding the most recent user
// message, or nil when the history has none.
func latestUserTurn(messages []domain.Message) []domain.Message {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			return []domain.Message{messages[i]}
		}
	}
	return nil
}
