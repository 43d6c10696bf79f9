package domain

import (
	"cmp"
	"slices"
	"strings"
)

type yearMonth struct {
	year  int
	month int
}

// outranks reports whether a should represent a group instead of b: larger
// magnitude first, then earlier timestamp. Both must carry a magnitude.
// Location breaks the remaining ties so the order is total.
func outranks(a, b Event) bool {
	if am, bm := *a.Magnitude, *b.Magnitude; am != bm {
		return am > bm
	}
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	return a.Location < b.Location
}

// MonthlyExtremes returns the strongest event of every (year, month) that has
// at least one event with a magnitude, ordered by year then month. The result
// does not depend on the order of events.
func MonthlyExtremes(events []Event) []MonthlyExtreme {
	best := make(map[yearMonth]Event)
	for _, e := range events {
		if !e.HasMagnitude() {
			continue
		}
		key := yearMonth{year: e.Year, month: e.Month}
		if cur, ok := best[key]; !ok || outranks(e, cur) {
			best[key] = e
		}
	}

	out := make([]MonthlyExtreme, 0, len(best))
	for key, e := range best {
		out = append(out, MonthlyExtreme{
			Year:         key.year,
			Month:        key.month,
			MaxMagnitude: *e.Magnitude,
			Event:        e,
		})
	}
	slices.SortFunc(out, func(a, b MonthlyExtreme) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Month, b.Month))
	})
	return out
}

// Leaderboard ranks the locations that appear as monthly representatives by
// number of months won, then by their best winning magnitude. Each entry
// keeps its single best win under the usual tie-break.
func Leaderboard(extremes []MonthlyExtreme) []LeaderboardEntry {
	byLocation := make(map[string]*LeaderboardEntry)
	for _, m := range extremes {
		loc := m.Event.Location
		entry, ok := byLocation[loc]
		if !ok {
			entry = &LeaderboardEntry{
				Location:      loc,
				BestMagnitude: m.MaxMagnitude,
				BestTimestamp: m.Event.Timestamp,
			}
			byLocation[loc] = entry
		} else if m.MaxMagnitude > entry.BestMagnitude ||
			(m.MaxMagnitude == entry.BestMagnitude && m.Event.Timestamp.Before(entry.BestTimestamp)) {
			entry.BestMagnitude = m.MaxMagnitude
			entry.BestTimestamp = m.Event.Timestamp
		}
		entry.Wins++
	}

	out := make([]LeaderboardEntry, 0, len(byLocation))
	for _, entry := range byLocation {
		out = append(out, *entry)
	}
	slices.SortFunc(out, func(a, b LeaderboardEntry) int {
		return cmp.Or(
			cmp.Compare(b.Wins, a.Wins),
			cmp.Compare(b.BestMagnitude, a.BestMagnitude),
			strings.Compare(a.Location, b.Location),
		)
	})
	return out
}

// TopLeaderboard returns at most n leading entries. n <= 0 returns all.
func TopLeaderboard(entries []LeaderboardEntry, n int) []LeaderboardEntry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}
