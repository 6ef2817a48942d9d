package domain

import "context"

const tokensPerMillion = 1_000_000.0

// StandardCostCalculator prices usage from catalog per-million-token rates.
type StandardCostCalculator struct {
	catalog Catalog
}

// NewStandardCostCalculator creates a new cost calculator.
func NewStandardCostCalculator(catalog Catalog) *StandardCostCalculator {
	return &StandardCostCalculator{
		catalog: catalog,
	}
}

// Calculate computes the total USD cost for the given model and usage.
// Pure and deterministic: same inputs and catalog always yield the same cost.
func (c *StandardCostCalculator) Calculate(
	ctx context.Context,
	modelID string,
	usage Usage,
) (float64, error) {
	if modelID == "" {
		return 0, NewError(KindNotFound, "model cannot be empty")
	}

	model, err := c.catalog.Get(ctx, modelID)
	if err != nil {
		return 0, err
	}

	inputCost := float64(usage.InputTokens) / tokensPerMillion * model.InputPerMTok
	outputCost := float64(usage.OutputTokens) / tokensPerMillion * model.OutputPerMTok

	return inputCost + outputCost, nil
}
