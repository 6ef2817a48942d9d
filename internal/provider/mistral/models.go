package mistral

import "github.com/davidbz/sophie/internal/domain"

// USD per one million tokens.
const (
	largeInputPerMTok  = 2.00
	largeOutputPerMTok = 6.00
)

// Models returns the catalog entries served by this provider.
func Models() []domain.ModelDescriptor {
	return []domain.ModelDescriptor{
		{
			ID:            "mistral-large",
			DisplayName:   "Mistral Large 🇪🇺",
			Provider:      providerName,
			InputPerMTok:  largeInputPerMTok,
			OutputPerMTok: largeOutputPerMTok,
		},
	}
}
