package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/davidbz/sophie/internal/domain"
)

const recentLimit = 10

// Report aggregates both ledgers for the admin view.
type Report struct {
	TotalCost         float64              `json:"total_cost"`
	Interactions      int                  `json:"interactions"`
	UniqueUsers       int                  `json:"unique_users"`
	CostByModel       map[string]float64   `json:"cost_by_model"`
	MeanRatingByModel map[string]float64   `json:"mean_rating_by_model"`
	Recent            []domain.UsageRecord `json:"recent"`
}

// Reporter computes aggregates over the append-only logs.
type Reporter struct {
	usage    domain.UsageLedger
	feedback domain.FeedbackLedger
}

// NewReporter creates a new reporter (DI constructor).
func NewReporter(usage domain.UsageLedger, feedback domain.FeedbackLedger) *Reporter {
	return &Reporter{
		usage:    usage,
		feedback: feedback,
	}
}

// Summary loads both ledgers and computes the aggregate report. Records are
// sorted by timestamp before the recency cut since file order is only
// advisory.
func (r *Reporter) Summary(ctx context.Context) (*Report, error) {
	usage, err := r.usage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage ledger: %w", err)
	}

	feedback, err := r.feedback.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback ledger: %w", err)
	}

	report := &Report{
		Interactions:      len(usage),
		CostByModel:       make(map[string]float64),
		MeanRatingByModel: make(map[string]float64),
	}

	users := make(map[string]struct{})
	for _, rec := range usage {
		report.TotalCost += rec.Cost
		report.CostByModel[rec.Model] += rec.Cost
		users[rec.User] = struct{}{}
	}
	report.UniqueUsers = len(users)

	ratingSum := make(map[string]int)
	ratingCount := make(map[string]int)
	for _, rec := range feedback {
		ratingSum[rec.Model] += rec.Rating
		ratingCount[rec.Model]++
	}
	for model, count := range ratingCount {
		report.MeanRatingByModel[model] = float64(ratingSum[model]) / float64(count)
	}

	sorted := make([]domain.UsageRecord, len(usage))
	copy(sorted, usage)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Time.After(sorted[j].Time)
	})
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	report.Recent = sorted

	return report, nil
}
