package domain

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultHistogramBins is the bin count used when none is configured.
const DefaultHistogramBins = 20

// FilterByLocation keeps events whose location contains substr, ignoring
// case. An empty substr keeps everything.
func FilterByLocation(events []Event, substr string) []Event {
	substr = strings.ToLower(strings.TrimSpace(substr))
	if substr == "" {
		return events
	}
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Location), substr) {
			out = append(out, e)
		}
	}
	return out
}

// YearlyCounts returns the number of events per year, ascending.
func YearlyCounts(events []Event) []YearCount {
	counts := make(map[int]int)
	for _, e := range events {
		counts[e.Year]++
	}
	out := make([]YearCount, 0, len(counts))
	for year, n := range counts {
		out = append(out, YearCount{Year: year, Count: n})
	}
	slices.SortFunc(out, func(a, b YearCount) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// MonthlyCounts returns the number of events per (year, month), ascending.
// Months without events are omitted; see MonthlyMatrix for a filled grid.
func MonthlyCounts(events []Event) []MonthCount {
	counts := make(map[yearMonth]int)
	for _, e := range events {
		counts[yearMonth{year: e.Year, month: e.Month}]++
	}
	out := make([]MonthCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, MonthCount{Year: key.year, Month: key.month, Count: n})
	}
	slices.SortFunc(out, func(a, b MonthCount) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Month, b.Month))
	})
	return out
}

// MonthlyMatrix pivots monthly counts into one row per year with twelve
// zero-filled month columns (January at index 0).
func MonthlyMatrix(counts []MonthCount) (years []int, grid [][12]int) {
	rows := make(map[int]int)
	for _, c := range counts {
		if _, ok := rows[c.Year]; !ok {
			rows[c.Year] = len(years)
			years = append(years, c.Year)
			grid = append(grid, [12]int{})
		}
		if c.Month >= 1 && c.Month <= 12 {
			grid[rows[c.Year]][c.Month-1] += c.Count
		}
	}
	return years, grid
}

// YearlyTrend returns, per year, the mean magnitude and the number of events
// that carried one. Years whose events all lack a magnitude report zero for
// both.
func YearlyTrend(events []Event) []YearTrend {
	type acc struct {
		sum float64
		n   int
	}
	byYear := make(map[int]*acc)
	for _, e := range events {
		a, ok := byYear[e.Year]
		if !ok {
			a = &acc{}
			byYear[e.Year] = a
		}
		if e.HasMagnitude() {
			a.sum += *e.Magnitude
			a.n++
		}
	}
	out := make([]YearTrend, 0, len(byYear))
	for year, a := range byYear {
		t := YearTrend{Year: year, Count: a.n}
		if a.n > 0 {
			t.MeanMagnitude = a.sum / float64(a.n)
		}
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b YearTrend) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// CategoryCounts tallies events by magnitude category. Events without a
// magnitude are not counted.
func CategoryCounts(events []Event) CategoryCount {
	var c CategoryCount
	for _, e := range events {
		switch e.Category {
		case CategoryMinor:
			c.Minor++
		case CategoryModerate:
			c.Moderate++
		case CategorySignificant:
			c.Significant++
		}
	}
	return c
}

// MagnitudeHistogram spreads present magnitudes over bins equal-width bins
// between their minimum and maximum. When all magnitudes are equal the range
// is widened by 0.5 on each side. Returns nil when no event has a magnitude.
func MagnitudeHistogram(events []Event, bins int) []HistogramBin {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	var values []float64
	for _, e := range events {
		if e.HasMagnitude() {
			values = append(values, *e.Magnitude)
		}
	}
	if len(values) == 0 {
		return nil
	}

	lo, hi := slices.Min(values), slices.Max(values)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(bins)

	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}
