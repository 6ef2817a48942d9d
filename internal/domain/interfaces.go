package domain

import "context"

// Provider represents one LLM vendor behind the uniform call contract.
type Provider interface {
	// Complete sends a completion request and returns the normalized result.
	// Failures are always returned as *Error with an appropriate kind; raw
	// vendor faults never escape the adapter.
	Complete(ctx context.Context, req *CompletionRequest) (*Completion, error)

	// Name returns the provider identifier used for dispatch.
	Name() string
}

// ProviderRegistry manages available provider adapters keyed by provider id.
type ProviderRegistry interface {
	// Register adds a provider to the registry.
	Register(ctx context.Context, provider Provider) error

	// Get retrieves a provider by id. Missing providers are a
	// KindConfiguration failure: a catalog entry referenced an adapter that
	// was never registered.
	Get(ctx context.Context, providerName string) (Provider, error)

	// List returns the ids of all registered providers.
	List(ctx context.Context) ([]string, error)
}

// Catalog is the static model registry.
type Catalog interface {
	// List returns all model descriptors in their configured order.
	List(ctx context.Context) []ModelDescriptor

	// Get returns the descriptor for a model id, or a KindNotFound error.
	Get(ctx context.Context, modelID string) (ModelDescriptor, error)
}

// CostCalculator prices token usage for a model.
type CostCalculator interface {
	// Calculate returns the USD cost for the given usage. Unknown models are
	// a KindNotFound error propagated from the catalog.
	Calculate(ctx context.Context, modelID string, usage Usage) (float64, error)
}

// UsageLedger is the append-only log of priced interactions.
// Implementations must serialize appends so concurrent sessions never
// interleave a record. No update or delete exists; corrections are new
// records.
type UsageLedger interface {
	Record(ctx context.Context, rec UsageRecord) error
	Load(ctx context.Context) ([]UsageRecord, error)
}

// FeedbackLedger is the append-only log of star ratings.
type FeedbackLedger interface {
	Record(ctx context.Context, rec FeedbackRecord) error
	Load(ctx context.Context) ([]FeedbackRecord, error)
}
