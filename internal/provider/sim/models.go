package sim

import "github.com/davidbz/sophie/internal/domain"

// Models returns the catalog entry for the offline responder. Zero pricing:
// simulated interactions still produce usage records, at no cost.
func Models() []domain.ModelDescriptor {
	return []domain.ModelDescriptor{
		{
			ID:            "sim-1",
			DisplayName:   "Simulated (offline)",
			Provider:      providerName,
			InputPerMTok:  0,
			OutputPerMTok: 0,
		},
	}
}
