package report

import (
	"time"

	"github.com/couchcryptid/quake-report/internal/domain"
)

// TimeLayout is the date format used everywhere a report shows an event time.
const TimeLayout = "2006-01-02 15:04"

// EventView is the serialized form of an event inside a report.
type EventView struct {
	Timestamp string   `json:"timestamp"`
	Magnitude *float64 `json:"magnitude,omitempty"`
	Location  string   `json:"location"`
	Category  string   `json:"category,omitempty"`
}

// ExtremeView is the serialized form of a monthly extreme.
type ExtremeView struct {
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	MaxMagnitude float64   `json:"max_magnitude"`
	Event        EventView `json:"event"`
}

// LeaderboardView is the serialized form of a leaderboard row.
type LeaderboardView struct {
	Location      string  `json:"location"`
	Wins          int     `json:"months_as_monthly_maximum"`
	BestMagnitude float64 `json:"highest_monthly_magnitude"`
	BestTimestamp string  `json:"when_highest_occurred"`
}

// SummaryView is the serialized form of a whole summary.
type SummaryView struct {
	RunID          string `json:"run_id"`
	GeneratedAt    string `json:"generated_at"`
	LocationFilter string `json:"location_filter,omitempty"`
	RowsRead       int    `json:"rows_read"`
	RowsDropped    int    `json:"rows_dropped"`
	EventCount     int    `json:"event_count"`

	MonthlyExtremes []ExtremeView        `json:"monthly_extremes"`
	Leaderboard     []LeaderboardView    `json:"leaderboard"`
	DayNight        domain.DayNightTally `json:"day_night"`
	Felt            domain.DayNightTally `json:"felt"`

	YearlyCounts  []domain.YearCount    `json:"yearly_counts"`
	MonthlyCounts []domain.MonthCount   `json:"monthly_counts"`
	YearlyTrend   []domain.YearTrend    `json:"yearly_trend"`
	Categories    domain.CategoryCount  `json:"categories"`
	Histogram     []domain.HistogramBin `json:"histogram"`
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// NewEventView converts an event for serialization.
func NewEventView(e domain.Event) EventView {
	return EventView{
		Timestamp: FormatTime(e.Timestamp),
		Magnitude: e.Magnitude,
		Location:  e.Location,
		Category:  string(e.Category),
	}
}

// NewExtremeView converts a monthly extreme for serialization.
func NewExtremeView(m domain.MonthlyExtreme) ExtremeView {
	return ExtremeView{
		Year:         m.Year,
		Month:        m.Month,
		MaxMagnitude: m.MaxMagnitude,
		Event:        NewEventView(m.Event),
	}
}

// NewSummaryView converts a summary for serialization. Slices are never nil
// so JSON consumers always see arrays.
func NewSummaryView(s domain.Summary) SummaryView {
	v := SummaryView{
		RunID:          s.RunID,
		GeneratedAt:    s.GeneratedAt.UTC().Format(time.RFC3339),
		LocationFilter: s.LocationFilter,
		RowsRead:       s.RowsRead,
		RowsDropped:    s.RowsDropped,
		EventCount:     s.EventCount,

		MonthlyExtremes: make([]ExtremeView, 0, len(s.MonthlyExtremes)),
		Leaderboard:     make([]LeaderboardView, 0, len(s.Leaderboard)),
		DayNight:        s.DayNight,
		Felt:            s.Felt,

		YearlyCounts:  nonNil(s.YearlyCounts),
		MonthlyCounts: nonNil(s.MonthlyCounts),
		YearlyTrend:   nonNil(s.YearlyTrend),
		Categories:    s.Categories,
		Histogram:     nonNil(s.Histogram),
	}
	for _, m := range s.MonthlyExtremes {
		v.MonthlyExtremes = append(v.MonthlyExtremes, NewExtremeView(m))
	}
	for _, e := range s.Leaderboard {
		v.Leaderboard = append(v.Leaderboard, LeaderboardView{
			Location:      e.Location,
			Wins:          e.Wins,
			BestMagnitude: e.BestMagnitude,
			BestTimestamp: FormatTime(e.BestTimestamp),
		})
	}
	return v
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
