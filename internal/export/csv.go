// Package export formats the transaction history for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/Veraticus/tally/internal/model"
)

// DefaultDateFormat is the short date layout used when none is configured.
const DefaultDateFormat = "1/2/2006"

// ContentType of the CSV export.
const ContentType = "text/csv"

// Header is the first row of every export.
var Header = []string{"Date", "Type", "Category", "Amount"}

// CSV renders txns in their stored order. Dates use dateFormat in loc;
// an empty format means DefaultDateFormat and a nil loc means time.Local.
func CSV(txns []model.Transaction, dateFormat string, loc *time.Location) ([]byte, error) {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	if loc == nil {
		loc = time.Local
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for _, t := range txns {
		row := []string{
			t.Date.In(loc).Format(dateFormat),
			string(t.Kind),
			t.Category,
			t.Amount.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write transaction %s: %w", t.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns the download name for an export made at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("finances_%s.csv", now.UTC().Format("2006-01-02"))
}
