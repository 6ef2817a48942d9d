// Package ledger implements the append-only usage and feedback logs as flat
// CSV files: UTF-8, comma-delimited, one record per line, header written
// when a file is first created. Appends are serialized per file so
// concurrent sessions never interleave a record. There is no update or
// delete; corrections are new records.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const fileMode = 0o644

// appendRow opens (creating if needed) the file, writes the header when the
// file is empty, and appends one row. Callers hold the per-file lock.
func appendRow(path string, header, row []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return fmt.Errorf("failed to open ledger %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat ledger %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if writeErr := w.Write(header); writeErr != nil {
			return fmt.Errorf("failed to write ledger header: %w", writeErr)
		}
	}
	if writeErr := w.Write(row); writeErr != nil {
		return fmt.Errorf("failed to append ledger row: %w", writeErr)
	}

	w.Flush()
	if flushErr := w.Error(); flushErr != nil {
		return fmt.Errorf("failed to flush ledger row: %w", flushErr)
	}

	return f.Sync()
}

// readRows returns all data rows in file order, header skipped. A missing
// file reads as empty: nothing has been logged yet.
func readRows(path string, wantFields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open ledger %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = wantFields

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger %s: %w", path, err)
	}

	if len(rows) > 0 {
		rows = rows[1:] // header
	}
	return rows, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q: %w", s, err)
	}
	return t, nil
}

// formatCost keeps full float precision so a round-trip is lossless.
func formatCost(cost float64) string {
	return strconv.FormatFloat(cost, 'f', -1, 64)
}
