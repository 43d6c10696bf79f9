package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/couchcryptid/quake-report/internal/domain"
)

// WriteSummaryJSON writes the summary as indented JSON.
func WriteSummaryJSON(w io.Writer, s domain.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSummaryView(s)); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}
