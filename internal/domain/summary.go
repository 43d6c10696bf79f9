package domain

// SummaryOptions controls how Summarize shapes its output.
type SummaryOptions struct {
	LocationFilter  string
	LeaderboardSize int // <= 0 keeps every location
	HistogramBins   int // <= 0 uses DefaultHistogramBins
}

// Summarize filters normalized events by location and computes every
// aggregate the report shows. Run metadata other than GeneratedAt is left
// for the caller to fill in.
func Summarize(events []Event, opts SummaryOptions) Summary {
	events = FilterByLocation(events, opts.LocationFilter)
	extremes := MonthlyExtremes(events)

	return Summary{
		GeneratedAt:     clock.Now(),
		LocationFilter:  opts.LocationFilter,
		EventCount:      len(events),
		MonthlyExtremes: extremes,
		Leaderboard:     TopLeaderboard(Leaderboard(extremes), opts.LeaderboardSize),
		DayNight:        TallyDayNight(events),
		Felt:            TallyFelt(events),
		YearlyCounts:    YearlyCounts(events),
		MonthlyCounts:   MonthlyCounts(events),
		YearlyTrend:     YearlyTrend(events),
		Categories:      CategoryCounts(events),
		Histogram:       MagnitudeHistogram(events, opts.HistogramBins),
	}
}
