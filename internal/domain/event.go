package domain

import "time"

// RawRecord is one unprocessed catalogue row as read from the source.
// All fields are kept as text; parsing happens in Normalize.
type RawRecord struct {
	Timestamp string `json:"Date_Time_PH"`
	Magnitude string `json:"Magnitude"`
	Location  string `json:"General_Location"`
}

// MagnitudeCategory is the coarse label derived from an event's magnitude.
type MagnitudeCategory string

const (
	CategoryMinor       MagnitudeCategory = "Minor"
	CategoryModerate    MagnitudeCategory = "Moderate"
	CategorySignificant MagnitudeCategory = "Significant"
)

// Event is a normalized catalogue row. Year, Month and Hour always mirror
// Timestamp's wall clock.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	Magnitude *float64          `json:"magnitude,omitempty"` // nil when absent in the source
	Location  string            `json:"location"`
	Year      int               `json:"year"`
	Month     int               `json:"month"`
	Hour      int               `json:"hour"`
	Category  MagnitudeCategory `json:"category,omitempty"`
}

// HasMagnitude reports whether the source row carried a usable magnitude.
func (e Event) HasMagnitude() bool {
	return e.Magnitude != nil
}

// MonthlyExtreme is the strongest event of one calendar year-month.
type MonthlyExtreme struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	MaxMagnitude float64 `json:"max_magnitude"`
	Event        Event   `json:"event"`
}

// LeaderboardEntry summarizes how often a location was the monthly maximum.
type LeaderboardEntry struct {
	Location      string    `json:"location"`
	Wins          int       `json:"wins"`
	BestMagnitude float64   `json:"best_magnitude"`
	BestTimestamp time.Time `json:"best_timestamp"`
}

// DayNightTally splits an event population by local hour of occurrence.
type DayNightTally struct {
	Day        int     `json:"day"`
	Night      int     `json:"night"`
	Total      int     `json:"total"`
	DayRatio   float64 `json:"day_ratio"`
	NightRatio float64 `json:"night_ratio"`
}

// YearCount is the number of events in one calendar year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// MonthCount is the number of events in one calendar year-month.
type MonthCount struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Count int `json:"count"`
}

// YearTrend pairs a year's mean magnitude with the number of events that
// carried a magnitude.
type YearTrend struct {
	Year          int     `json:"year"`
	MeanMagnitude float64 `json:"mean_magnitude"`
	Count         int     `json:"count"`
}

// CategoryCount holds per-category event counts.
type CategoryCount struct {
	Minor       int `json:"minor"`
	Moderate    int `json:"moderate"`
	Significant int `json:"significant"`
}

// HistogramBin is one equal-width magnitude bin. Lower is inclusive; Upper is
// exclusive except for the last bin.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Summary is everything the reporting layer needs for one run.
type Summary struct {
	RunID          string    `json:"run_id"`
	GeneratedAt    time.Time `json:"generated_at"`
	LocationFilter string    `json:"location_filter,omitempty"`
	RowsRead       int       `json:"rows_read"`
	RowsDropped    int       `json:"rows_dropped"`
	EventCount     int       `json:"event_count"`

	MonthlyExtremes []MonthlyExtreme   `json:"monthly_extremes"`
	Leaderboard     []LeaderboardEntry `json:"leaderboard"`
	DayNight        DayNightTally      `json:"day_night"`
	Felt            DayNightTally      `json:"felt"`

	YearlyCounts  []YearCount    `json:"yearly_counts"`
	MonthlyCounts []MonthCount   `json:"monthly_counts"`
	YearlyTrend   []YearTrend    `json:"yearly_trend"`
	Categories    CategoryCount  `json:"categories"`
	Histogram     []HistogramBin `json:"histogram"`
}
