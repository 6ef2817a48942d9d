package openai

import "github.com/davidbz/sophie/internal/domain"

// USD per one million tokens.
const (
	gpt4oInputPerMTok  = 2.50
	gpt4oOutputPerMTok = 10.00
)

// Models returns the catalog entries served by this provider.
func Models() []domain.ModelDescriptor {
	return []domain.ModelDescriptor{
		{
			ID:            "gpt-4o",
			DisplayName:   "OpenAI GPT-4o 🚀",
			Provider:      providerName,
			InputPerMTok:  gpt4oInputPerMTok,
			OutputPerMTok: gpt4oOutputPerMTok,
		},
	}
}
