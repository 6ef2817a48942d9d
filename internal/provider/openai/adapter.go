// Package openai provides an adapter for the OpenAI API using the official
// SDK. It translates the generic conversation into SDK chat parameters
// (full history, document context appended to the final user turn) and
// normalizes replies and failures into domain types.
package openai

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/davidbz/sophie/internal/domain"
	"github.com/davidbz/sophie/internal/observability"
)

const providerName = "openai"

// Provider implements the domain.Provider interface for OpenAI.
type Provider struct {
	client  openai.Client
	name    string
	haveKey bool
}

// NewProvider creates a new OpenAI provider. A missing API key is not a
// construction error: the adapter registers anyway and reports AuthMissing
// per call, so a deployment without the credential degrades instead of
// crashing.
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
		client:  openai.NewClient(opts...),
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
		return nil, domain.NewError(domain.KindAuthMissing, "no OpenAI API key is configured")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API")

	history := domain.WithDocument(req.Messages, req.Document)

	resp, err := p.client.Chat.Completions.New(ctx, p.toSDKParams(req.Model, history))
	if err != nil {
		logger.Error("OpenAI API call failed", observability.Error(err))
		return nil, NormalizeError(providerName, err)
	}

	return p.toDomainCompletion(resp, history), nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// toSDKParams converts the document-injected history to SDK
// ChatCompletionNewParams. The full history is forwarded.
func (p *Provider) toSDKParams(model string, history []domain.Message) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, len(history))
	for i, msg := range history {
		switch msg.Role {
		case domain.RoleAssistant:
			messages[i] = openai.AssistantMessage(msg.Content)
		default:
			messages[i] = openai.UserMessage(msg.Content)
		}
	}

	return openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}
}

// toDomainCompletion converts an SDK response to a domain completion.
// Vendor-reported usage is used exactly; a reply missing its usage block is
// still accepted, with counts estimated and flagged. The input estimate
// comes from the prompt that was sent, the output estimate from the reply.
func (p *Provider) toDomainCompletion(resp *openai.ChatCompletion, history []domain.Message) *domain.Completion {
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
			InputTokens:  domain.EstimatePromptTokens(history),
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

// NormalizeError converts an SDK or transport failure into a typed domain
// error. Shared with the gemini adapter, which speaks through the same SDK.
func NormalizeError(provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(domain.KindProvider, provider+" call timed out", err)
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			return domain.WrapError(domain.KindAuthMissing, provider+" rejected the configured credential", err)
		case apiErr.StatusCode == 429:
			return domain.WrapError(domain.KindRateLimited, provider+" is rate limiting requests", err)
		case apiErr.StatusCode >= 500:
			return domain.WrapError(domain.KindProvider, provider+" returned a server error", err)
		default:
			return domain.WrapError(domain.KindProvider, provider+" rejected the request", err)
		}
	}

	return domain.WrapError(domain.KindUnknown, provider+" call failed", err)
}
