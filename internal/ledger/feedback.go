package ledger

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/davidbz/sophie/internal/domain"
)

var feedbackHeader = []string{"time", "user", "model", "rating", "comment"}

// FeedbackLog implements domain.FeedbackLedger over one CSV file,
// independent of the usage log.
type FeedbackLog struct {
	mu   sync.Mutex
	path string
}

// NewFeedbackLog creates a feedback ledger backed by the given file path.
func NewFeedbackLog(path string) *FeedbackLog {
	return &FeedbackLog{path: path}
}

// Record appends one feedback record.
func (l *FeedbackLog) Record(_ context.Context, rec domain.FeedbackRecord) error {
	if rec.User == "" {
		return fmt.Errorf("feedback record missing user")
	}
	if rec.Model == "" {
		return fmt.Errorf("feedback record missing model")
	}
	if rec.Rating < 1 || rec.Rating > 5 {
		return fmt.Errorf("feedback rating %d out of range", rec.Rating)
	}

	row := []string{
		rec.Time.Format(time.RFC3339),
		rec.User,
		rec.Model,
		strconv.Itoa(rec.Rating),
		rec.Comment,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return appendRow(l.path, feedbackHeader, row)
}

// Load returns all feedback records in file order.
func (l *FeedbackLog) Load(_ context.Context) ([]domain.FeedbackRecord, error) {
	l.mu.Lock()
	rows, err := readRows(l.path, len(feedbackHeader))
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}

	records := make([]domain.FeedbackRecord, 0, len(rows))
	for _, row := range rows {
		t, parseErr := parseTime(row[0])
		if parseErr != nil {
			return nil, parseErr
		}

		rating, parseErr := strconv.Atoi(row[3])
		if parseErr != nil {
			return nil, fmt.Errorf("bad rating %q: %w", row[3], parseErr)
		}

		records = append(records, domain.FeedbackRecord{
			Time:    t,
			User:    row[1],
			Model:   row[2],
			Rating:  rating,
			Comment: row[4],
		})
	}

	return records, nil
}
