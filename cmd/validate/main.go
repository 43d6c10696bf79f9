// Command validate performs data integrity checks on an earthquake catalogue
// and, optionally, on a previously written summary.json. It recomputes the
// monthly extremes by brute force and checks them, the leaderboard and the
// day/night tallies against the aggregator output.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -csv data/phivolcs_earthquake_data.csv \
//	  -summary out/summary.json \
//	  -max-drop 0.01
//
// Column names and the location filter come from the same environment
// variables as the report command.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/couchcryptid/quake-report/internal/adapter/csvfile"
	"github.com/couchcryptid/quake-report/internal/config"
	"github.com/couchcryptid/quake-report/internal/domain"
	"github.com/couchcryptid/quake-report/internal/report"
)

// maxPlausibleMagnitude bounds magnitudes accepted as physically plausible.
const maxPlausibleMagnitude = 10.0

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the catalogue CSV (defaults to DATA_PATH)")
	summaryPath := flag.String("summary", "", "optional path to a summary.json to cross-check")
	maxDrop := flag.Float64("max-drop", 0.05, "maximum tolerated fraction of rows dropped for bad timestamps")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		os.Exit(1)
	}
	if *csvPath != "" {
		cfg.DataPath = *csvPath
	}

	if code := run(cfg, *summaryPath, *maxDrop); code != 0 {
		os.Exit(code)
	}
}

func run(cfg *config.Config, summaryPath string, maxDrop float64) int {
	fmt.Println("=== Earthquake Catalogue Integrity Validation ===")
	fmt.Println()

	rows, err := loadCatalogue(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	events, dropped := domain.Normalize(rows)
	summary := domain.Summarize(events, domain.SummaryOptions{
		LocationFilter:  cfg.LocationFilter,
		LeaderboardSize: 0,
		HistogramBins:   cfg.HistogramBins,
	})
	filtered := domain.FilterByLocation(events, cfg.LocationFilter)

	phases := []*phase{
		validateParse(rows, events, dropped, maxDrop),
		validateExtremes(filtered, summary.MonthlyExtremes),
		validateLeaderboard(summary.MonthlyExtremes, summary.Leaderboard),
		validateTallies(filtered, summary),
	}
	if summaryPath != "" {
		phases = append(phases, validateSummaryFile(summaryPath, summary, cfg.LeaderboardSize))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d read, %d dropped, %d events, %d after filter %q, %d monthly groups\n",
		len(rows), dropped, len(events), len(filtered), cfg.LocationFilter, len(summary.MonthlyExtremes))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadCatalogue(cfg *config.Config) ([]domain.RawRecord, error) {
	f, err := os.Open(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()

	rows, err := csvfile.ReadRecords(context.Background(), f, csvfile.Columns{
		Timestamp: cfg.TimestampColumn,
		Magnitude: cfg.MagnitudeColumn,
		Location:  cfg.LocationColumn,
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cfg.DataPath, err)
	}
	return rows, nil
}

// ── Phases ──

func validateParse(rows []domain.RawRecord, events []domain.Event, dropped int, maxDrop float64) *phase {
	p := &phase{name: "Catalogue parse"}

	if len(events)+dropped != len(rows) {
		p.errorf("events (%d) + dropped (%d) != rows (%d)", len(events), dropped, len(rows))
	}
	if len(rows) > 0 {
		if ratio := float64(dropped) / float64(len(rows)); ratio > maxDrop {
			p.errorf("dropped %.2f%% of rows, limit %.2f%%", ratio*100, maxDrop*100)
		}
	}

	for _, e := range events {
		if e.HasMagnitude() && *e.Magnitude > maxPlausibleMagnitude {
			p.errorf("implausible magnitude %.1f at %s (%s)", *e.Magnitude, report.FormatTime(e.Timestamp), e.Location)
		}
		if e.Hour != e.Timestamp.Hour() || e.Month != int(e.Timestamp.Month()) || e.Year != e.Timestamp.Year() {
			p.errorf("derived fields disagree with timestamp %s", e.Timestamp)
		}
	}
	return p
}

// validateExtremes recomputes each month's maximum by scanning every event
// and checks the aggregator picked it.
func validateExtremes(events []domain.Event, extremes []domain.MonthlyExtreme) *phase {
	p := &phase{name: "Monthly extremes"}

	type month struct{ year, month int }
	best := make(map[month]float64)
	for _, e := range events {
		if !e.HasMagnitude() {
			continue
		}
		k := month{e.Year, e.Month}
		if cur, ok := best[k]; !ok || *e.Magnitude > cur {
			best[k] = *e.Magnitude
		}
	}

	if len(best) != len(extremes) {
		p.errorf("expected %d monthly groups, got %d", len(best), len(extremes))
	}
	for i, m := range extremes {
		if i > 0 {
			prev := extremes[i-1]
			if prev.Year > m.Year || (prev.Year == m.Year && prev.Month >= m.Month) {
				p.errorf("groups out of order at %04d-%02d", m.Year, m.Month)
			}
		}
		want, ok := best[month{m.Year, m.Month}]
		if !ok {
			p.errorf("unexpected group %04d-%02d", m.Year, m.Month)
			continue
		}
		if !floatEq(want, m.MaxMagnitude) {
			p.errorf("%04d-%02d: max magnitude %.2f, want %.2f", m.Year, m.Month, m.MaxMagnitude, want)
		}
		if !m.Event.HasMagnitude() || !floatEq(*m.Event.Magnitude, m.MaxMagnitude) {
			p.errorf("%04d-%02d: representative event does not carry the max magnitude", m.Year, m.Month)
		}
		if m.Event.Year != m.Year || m.Event.Month != m.Month {
			p.errorf("%04d-%02d: representative event is from another month", m.Year, m.Month)
		}
	}
	return p
}

func validateLeaderboard(extremes []domain.MonthlyExtreme, entries []domain.LeaderboardEntry) *phase {
	p := &phase{name: "Leaderboard consistency"}

	wins := 0
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.Location] {
			p.errorf("duplicate location %q", e.Location)
		}
		seen[e.Location] = true
		wins += e.Wins

		best := math.Inf(-1)
		for _, m := range extremes {
			if m.Event.Location == e.Location && m.MaxMagnitude > best {
				best = m.MaxMagnitude
			}
		}
		if !floatEq(best, e.BestMagnitude) {
			p.errorf("%q: best magnitude %.2f, want %.2f", e.Location, e.BestMagnitude, best)
		}
	}
	if wins != len(extremes) {
		p.errorf("wins sum to %d, want %d monthly groups", wins, len(extremes))
	}
	return p
}

func validateTallies(events []domain.Event, s domain.Summary) *phase {
	p := &phase{name: "Day/night tallies"}

	if s.DayNight.Total != len(events) {
		p.errorf("day/night total %d, want %d events", s.DayNight.Total, len(events))
	}
	if s.DayNight.Day+s.DayNight.Night != s.DayNight.Total {
		p.errorf("day (%d) + night (%d) != total (%d)", s.DayNight.Day, s.DayNight.Night, s.DayNight.Total)
	}
	if s.Felt.Day > s.DayNight.Day || s.Felt.Night > s.DayNight.Night {
		p.errorf("felt tally %+v exceeds overall tally %+v", s.Felt, s.DayNight)
	}
	if s.DayNight.Total > 0 && !floatEq(s.DayNight.DayRatio+s.DayNight.NightRatio, 1) {
		p.errorf("ratios sum to %.4f", s.DayNight.DayRatio+s.DayNight.NightRatio)
	}
	return p
}

// validateSummaryFile checks a written summary.json against a fresh
// recomputation from the same catalogue.
func validateSummaryFile(path string, want domain.Summary, leaderboardSize int) *phase {
	p := &phase{name: "Summary file parity"}

	data, err := os.ReadFile(path)
	if err != nil {
		p.errorf("read %s: %v", path, err)
		return p
	}
	var got report.SummaryView
	if err := json.Unmarshal(data, &got); err != nil {
		p.errorf("parse %s: %v", path, err)
		return p
	}

	if got.EventCount != want.EventCount {
		p.errorf("event_count %d, want %d", got.EventCount, want.EventCount)
	}
	if len(got.MonthlyExtremes) != len(want.MonthlyExtremes) {
		p.errorf("%d monthly extremes, want %d", len(got.MonthlyExtremes), len(want.MonthlyExtremes))
	} else {
		for i, m := range want.MonthlyExtremes {
			if g := got.MonthlyExtremes[i]; !extremeViewsEqual(g, report.NewExtremeView(m)) {
				p.errorf("%04d-%02d: file has %s %.1f, want %s %.1f", m.Year, m.Month,
					g.Event.Location, g.MaxMagnitude, m.Event.Location, m.MaxMagnitude)
			}
		}
	}

	top := domain.TopLeaderboard(want.Leaderboard, leaderboardSize)
	if len(got.Leaderboard) != len(top) {
		p.errorf("%d leaderboard rows, want %d", len(got.Leaderboard), len(top))
		return p
	}
	for i, e := range top {
		g := got.Leaderboard[i]
		if g.Location != e.Location || g.Wins != e.Wins || g.BestTimestamp != report.FormatTime(e.BestTimestamp) {
			p.errorf("leaderboard row %d: file has %q (%d wins), want %q (%d wins)", i+1, g.Location, g.Wins, e.Location, e.Wins)
		}
	}
	return p
}

func extremeViewsEqual(a, b report.ExtremeView) bool {
	return a.Year == b.Year && a.Month == b.Month &&
		floatEq(a.MaxMagnitude, b.MaxMagnitude) &&
		a.Event.Timestamp == b.Event.Timestamp &&
		a.Event.Location == b.Event.Location
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
