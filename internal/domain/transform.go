package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Magnitude category boundaries, inclusive on the lower side.
const (
	ModerateThreshold    = 4.0
	SignificantThreshold = 6.0
)

// timestampLayouts are tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"02 January 2006 - 03:04 PM",
	"2 January 2006 - 03:04 PM",
}

// Normalize parses raw rows into events. Rows whose timestamp is missing or
// does not match any known layout are skipped; their number is returned as
// dropped.
func Normalize(rows []RawRecord) (events []Event, dropped int) {
	events = make([]Event, 0, len(rows))
	for _, row := range rows {
		event, ok := NormalizeRecord(row)
		if !ok {
			dropped++
			continue
		}
		events = append(events, event)
	}
	return events, dropped
}

// NormalizeRecord converts a single row. ok is false when the timestamp is
// unusable.
func NormalizeRecord(row RawRecord) (Event, bool) {
	ts, ok := parseTimestamp(row.Timestamp)
	if !ok {
		return Event{}, false
	}

	event := Event{
		Timestamp: ts,
		Magnitude: parseMagnitude(row.Magnitude),
		Location:  strings.TrimSpace(row.Location),
		Year:      ts.Year(),
		Month:     int(ts.Month()),
		Hour:      ts.Hour(),
	}
	if event.Magnitude != nil {
		event.Category = CategorizeMagnitude(*event.Magnitude)
	}
	return event, true
}

// CategorizeMagnitude maps a magnitude to Minor (< 4.0), Moderate
// (4.0 to < 6.0) or Significant (≥ 6.0).
func CategorizeMagnitude(m float64) MagnitudeCategory {
	switch {
	case m < ModerateThreshold:
		return CategoryMinor
	case m < SignificantThreshold:
		return CategoryModerate
	default:
		return CategorySignificant
	}
}

// parseTimestamp accepts any of timestampLayouts. A zone offset, when
// present, is discarded: the result carries the wall clock as written,
// anchored to UTC, so zoned and plain rows compare by wall clock.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), true
		}
	}
	return time.Time{}, false
}

// parseMagnitude returns nil for empty, malformed, non-finite or negative
// values.
func parseMagnitude(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}
