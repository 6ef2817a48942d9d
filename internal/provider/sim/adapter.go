// Package sim provides an offline responder implementing the
// domain.Provider interface without any vendor call. It stands in for real
// providers in development and piloting: replies come from a canned set, and
// token accounting is approximated and always flagged Estimated: input
// tokens come deterministically from prompt length, output tokens from a
// bounded draw over a seeded source.
//
// History strategy: full history, document appended to the final user turn,
// same as the OpenAI adapter.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/davidbz/sophie/internal/domain"
	"github.com/davidbz/sophie/internal/observability"
)

const (
	providerName = "sim"

	minOutputTokens = 150
	maxOutputTokens = 500
)

// Canned reply bodies, cycled by the seeded draw.
var replies = []string{
	"That is an important point. Here is my analysis of it.",
	"Based on your input, I have prepared the following suggestion.",
	"Here is the data you asked for. Please double-check item three.",
}

// Provider implements the domain.Provider interface for offline use.
type Provider struct {
	name string

	mu  sync.Mutex
	rng *rand.Rand
}

// NewProvider creates a new simulated provider with a fixed seed.
func NewProvider(config Config) *Provider {
	return &Provider{
		name: providerName,
		rng:  rand.New(rand.NewSource(config.Seed)),
	}
}

// Complete produces a canned reply with approximated token accounting.
func (p *Provider) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.Completion, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.WrapError(domain.KindProvider, "sim call canceled", err)
	}

	history := domain.WithDocument(req.Messages, req.Document)
	inputTokens := domain.EstimatePromptTokens(history)

	p.mu.Lock()
	outputTokens := minOutputTokens + p.rng.Intn(maxOutputTokens-minOutputTokens+1)
	reply := replies[p.rng.Intn(len(replies))]
	p.mu.Unlock()

	content := reply
	if req.Document != nil && req.Document.Name != "" {
		content = fmt.Sprintf("%s (I am referring to the document '%s'.)", reply, req.Document.Name)
	}

	observability.FromContext(ctx).Debug("sim completion",
		observability.Int("input_tokens", inputTokens),
		observability.Int("output_tokens", outputTokens),
	)

	return &domain.Completion{
		Content:  content,
		Model:    req.Model,
		Provider: p.name,
		Usage: domain.Usage{
			InputTokens:  inputTokens,
			OutputTokens: outputTokens,
			Estimated:    true,
		},
		FinishTime: time.Now(),
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}
