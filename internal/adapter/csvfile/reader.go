package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/quake-report/internal/config"
	"github.com/couchcryptid/quake-report/internal/domain"
)

// Columns names the header fields that hold each raw record field.
type Columns struct {
	Timestamp string
	Magnitude string
	Location  string
}

// Reader loads the earthquake catalogue from a CSV file.
// It implements pipeline.Extractor.
type Reader struct {
	path    string
	columns Columns
	logger  *slog.Logger
}

// NewReader creates a Reader for the configured data path and column names.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	return &Reader{
		path: cfg.DataPath,
		columns: Columns{
			Timestamp: cfg.TimestampColumn,
			Magnitude: cfg.MagnitudeColumn,
			Location:  cfg.LocationColumn,
		},
		logger: logger,
	}
}

// Extract reads every data row of the file.
func (r *Reader) Extract(ctx context.Context) ([]domain.RawRecord, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()

	records, err := ReadRecords(ctx, f, r.columns)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	r.logger.Debug("catalogue loaded", "path", r.path, "rows", len(records))
	return records, nil
}

// ReadRecords decodes CSV rows into raw records using the header row to
// locate columns. Rows are passed through untouched; validation is left to
// domain.Normalize. Short rows yield empty fields.
func ReadRecords(ctx context.Context, in io.Reader, cols Columns) ([]domain.RawRecord, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := columnIndexes(header, cols)
	if err != nil {
		return nil, err
	}

	var records []domain.RawRecord
	for line := 2; ; line++ {
		if line%1000 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		records = append(records, domain.RawRecord{
			Timestamp: field(row, idx[0]),
			Magnitude: field(row, idx[1]),
			Location:  field(row, idx[2]),
		})
	}
	return records, nil
}

// columnIndexes resolves the timestamp, magnitude and location columns, in
// that order. Header names are matched case-insensitively.
func columnIndexes(header []string, cols Columns) ([3]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		positions[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var idx [3]int
	for i, want := range []string{cols.Timestamp, cols.Magnitude, cols.Location} {
		pos, ok := positions[strings.ToLower(strings.TrimSpace(want))]
		if !ok {
			return idx, fmt.Errorf("missing column %q", want)
		}
		idx[i] = pos
	}
	return idx, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
