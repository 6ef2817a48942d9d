package domain

import "time"

// Message represents one turn of a conversation.
type Message struct {
	Role    string `json:"role"` // user, assistant
	Content string `json:"content"`
	Stats   string `json:"stats,omitempty"` // UI caption, e.g. cost of the reply
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Document is an attached text document providing extra context for a request.
// Text is the already-decoded plain text; decoding uploads is the ingestion
// collaborator's job.
type Document struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// CompletionRequest represents a unified request to a provider.
type CompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Document *Document `json:"document,omitempty"`
}

// Completion is the normalized successful result of a provider call.
// Failures never produce a Completion; they come back as *Error.
type Completion struct {
	Content    string    `json:"content"`
	Model      string    `json:"model"`
	Provider   string    `json:"provider"`
	Usage      Usage     `json:"usage"`
	FinishTime time.Time `json:"finish_time"`
}

// Usage tracks token consumption for one completion.
// Estimated is set when the counts did not come from the vendor but from the
// character-count approximation (offline provider, or a vendor reply missing
// its usage block).
type Usage struct {
	InputTokens  int  `json:"input_tokens"`
	OutputTokens int  `json:"output_tokens"`
	Estimated    bool `json:"estimated,omitempty"`
}

// ModelDescriptor describes one selectable model in the catalog.
// Prices are USD per one million tokens. Immutable after load.
type ModelDescriptor struct {
	ID            string  `json:"id"`
	DisplayName   string  `json:"display_name"`
	Provider      string  `json:"provider"`
	InputPerMTok  float64 `json:"input_per_mtok"`
	OutputPerMTok float64 `json:"output_per_mtok"`
}

// UsageRecord is one append-only ledger entry for a completed interaction.
type UsageRecord struct {
	Time  time.Time `json:"time"`
	User  string    `json:"user"`
	Model string    `json:"model"`
	Cost  float64   `json:"cost"`
}

// FeedbackRecord is one append-only ledger entry for a star rating.
// It deliberately carries no reference to a UsageRecord; the two logs are
// independent.
type FeedbackRecord struct {
	Time    time.Time `json:"time"`
	User    string    `json:"user"`
	Model   string    `json:"model"`
	Rating  int       `json:"rating"` // 1..5
	Comment string    `json:"comment,omitempty"`
}
