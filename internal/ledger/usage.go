package ledger

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/davidbz/sophie/internal/domain"
)

var usageHeader = []string{"time", "user", "model", "cost"}

// UsageLog implements domain.UsageLedger over one CSV file.
type UsageLog struct {
	mu   sync.Mutex
	path string
}

// NewUsageLog creates a usage ledger backed by the given file path. The file
// is created lazily on first append.
func NewUsageLog(path string) *UsageLog {
	return &UsageLog{path: path}
}

// Record appends one usage record. Cost must be non-negative: usage records
// exist only for completed, successfully priced interactions.
func (l *UsageLog) Record(_ context.Context, rec domain.UsageRecord) error {
	if rec.User == "" {
		return fmt.Errorf("usage record missing user")
	}
	if rec.Model == "" {
		return fmt.Errorf("usage record missing model")
	}
	if rec.Cost < 0 {
		return fmt.Errorf("usage record has negative cost %f", rec.Cost)
	}

	row := []string{
		rec.Time.Format(time.RFC3339),
		rec.User,
		rec.Model,
		formatCost(rec.Cost),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return appendRow(l.path, usageHeader, row)
}

// Load returns all usage records in file order. Reporting code sorts by
// timestamp where order matters; file order is not guaranteed chronological
// if the file was edited externally.
func (l *UsageLog) Load(_ context.Context) ([]domain.UsageRecord, error) {
	l.mu.Lock()
	rows, err := readRows(l.path, len(usageHeader))
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}

	records := make([]domain.UsageRecord, 0, len(rows))
	for _, row := range rows {
		t, parseErr := parseTime(row[0])
		if parseErr != nil {
			return nil, parseErr
		}

		cost, parseErr := strconv.ParseFloat(row[3], 64)
		if parseErr != nil {
			return nil, fmt.Errorf("bad cost %q: %w", row[3], parseErr)
		}

		records = append(records, domain.UsageRecord{
			Time:  t,
			User:  row[1],
			Model: row[2],
			Cost:  cost,
		})
	}

	return records, nil
}
