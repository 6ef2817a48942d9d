package gemini

import "github.com/davidbz/sophie/internal/domain"

// USD per one million tokens.
const (
	flashInputPerMTok  = 0.10
	flashOutputPerMTok = 0.40

	proInputPerMTok  = 1.25
	proOutputPerMTok = 5.00
)

// Models returns the catalog entries served by this provider.
func Models() []domain.ModelDescriptor {
	return []domain.ModelDescriptor{
		{
			ID:            "gemini-1.5-flash",
			DisplayName:   "Google Gemini Flash ⚡",
			Provider:      providerName,
			InputPerMTok:  flashInputPerMTok,
			OutputPerMTok: flashOutputPerMTok,
		},
		{
			ID:            "gemini-1.5-pro",
			DisplayName:   "Google Gemini Pro 🧠",
			Provider:      providerName,
			InputPerMTok:  proInputPerMTok,
			OutputPerMTok: proOutputPerMTok,
		},
	}
}
