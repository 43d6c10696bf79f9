package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// event builds a normalized event, failing the test on a bad timestamp.
func event(t *testing.T, ts, mag, loc string) Event {
	t.Helper()
	e, ok := NormalizeRecord(RawRecord{Timestamp: ts, Magnitude: mag, Location: loc})
	require.True(t, ok, "timestamp %q", ts)
	return e
}

func exampleEvents(t *testing.T) []Event {
	return []Event{
		event(t, "2022-03-01T10:00", "5.0", "Ilocos Norte"),
		event(t, "2022-03-02T02:00", "5.0", "Ilocos Norte"),
		event(t, "2022-04-01T00:00", "3.9", "Batangas"),
	}
}

func TestMonthlyExtremes_TieGoesToEarliest(t *testing.T) {
	result := MonthlyExtremes(exampleEvents(t))

	require.Len(t, result, 2)

	assert.Equal(t, 2022, result[0].Year)
	assert.Equal(t, 3, result[0].Month)
	assert.Equal(t, 5.0, result[0].MaxMagnitude)
	assert.Equal(t, time.Date(2022, 3, 1, 10, 0, 0, 0, time.UTC), result[0].Event.Timestamp)
	assert.Equal(t, "Ilocos Norte", result[0].Event.Location)

	assert.Equal(t, 2022, result[1].Year)
	assert.Equal(t, 4, result[1].Month)
	assert.Equal(t, 3.9, result[1].MaxMagnitude)
	assert.Equal(t, time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC), result[1].Event.Timestamp)
	assert.Equal(t, "Batangas", result[1].Event.Location)
}

func TestMonthlyExtremes_TieComparesWallClockAcrossZones(t *testing.T) {
	zoned := event(t, "2022-03-01T10:00:00+08:00", "5.0", "Laoag City (Ilocos Norte)")
	plain := event(t, "2022-03-01 05:00", "5.0", "Pagudpud (Ilocos Norte)")

	for _, events := range [][]Event{{zoned, plain}, {plain, zoned}} {
		result := MonthlyExtremes(events)
		require.Len(t, result, 1)
		assert.Equal(t, "Pagudpud (Ilocos Norte)", result[0].Event.Location)
		assert.Equal(t, 5, result[0].Event.Hour)
	}

	board := Leaderboard([]MonthlyExtreme{
		{Year: 2022, Month: 3, MaxMagnitude: 5.0, Event: zoned},
		{Year: 2022, Month: 3, MaxMagnitude: 5.0, Event: event(t, "2022-03-01 05:00", "5.0", "Laoag City (Ilocos Norte)")},
	})
	require.Len(t, board, 1)
	assert.Equal(t, 5, board[0].BestTimestamp.Hour())
}

func TestMonthlyExtremes_PermutationInvariant(t *testing.T) {
	events := exampleEvents(t)
	expected := MonthlyExtremes(events)

	orders := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, order := range orders {
		permuted := make([]Event, len(order))
		for i, idx := range order {
			permuted[i] = events[idx]
		}
		assert.Equal(t, expected, MonthlyExtremes(permuted), "order %v", order)
	}
}

func TestMonthlyExtremes_LargestMagnitudeWins(t *testing.T) {
	events := []Event{
		event(t, "2021-07-01 01:00", "3.1", "A"),
		event(t, "2021-07-20 12:00", "6.4", "B"),
		event(t, "2021-07-05 09:00", "4.8", "C"),
	}

	result := MonthlyExtremes(events)

	require.Len(t, result, 1)
	assert.Equal(t, 6.4, result[0].MaxMagnitude)
	assert.Equal(t, "B", result[0].Event.Location)
}

func TestMonthlyExtremes_GroupCountMatchesDistinctMonths(t *testing.T) {
	events := []Event{
		event(t, "2020-01-15", "2.0", "A"),
		event(t, "2020-01-20", "2.5", "A"),
		event(t, "2020-02-01", "3.0", "B"),
		event(t, "2021-01-01", "3.0", "C"),
		event(t, "2019-12-31 23:59", "1.0", "D"),
	}

	result := MonthlyExtremes(events)

	require.Len(t, result, 4)
	assert.Equal(t, [2]int{2019, 12}, [2]int{result[0].Year, result[0].Month})
	assert.Equal(t, [2]int{2020, 1}, [2]int{result[1].Year, result[1].Month})
	assert.Equal(t, [2]int{2020, 2}, [2]int{result[2].Year, result[2].Month})
	assert.Equal(t, [2]int{2021, 1}, [2]int{result[3].Year, result[3].Month})
}

func TestMonthlyExtremes_SkipsMissingMagnitude(t *testing.T) {
	events := []Event{
		event(t, "2020-05-01", "", "A"),
		event(t, "2020-05-02", "2.2", "B"),
		event(t, "2020-06-01", "", "C"),
	}

	result := MonthlyExtremes(events)

	require.Len(t, result, 1)
	assert.Equal(t, "B", result[0].Event.Location)
}

func TestMonthlyExtremes_Empty(t *testing.T) {
	result := MonthlyExtremes(nil)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestLeaderboard(t *testing.T) {
	events := []Event{
		// Pagudpud wins Jan (5.1) and Mar (4.2)
		event(t, "2022-01-03 04:00", "5.1", "Pagudpud"),
		event(t, "2022-03-09 13:00", "4.2", "Pagudpud"),
		// Burgos wins Feb (6.0) and Apr (6.0, later)
		event(t, "2022-02-11 08:00", "6.0", "Burgos"),
		event(t, "2022-04-11 08:00", "6.0", "Burgos"),
		// Laoag wins May only
		event(t, "2022-05-01 20:00", "3.0", "Laoag"),
		// non-winners
		event(t, "2022-01-05 04:00", "2.0", "Laoag"),
		event(t, "2022-02-01 04:00", "1.0", "Pagudpud"),
	}

	board := Leaderboard(MonthlyExtremes(events))

	require.Len(t, board, 3)

	assert.Equal(t, "Burgos", board[0].Location)
	assert.Equal(t, 2, board[0].Wins)
	assert.Equal(t, 6.0, board[0].BestMagnitude)
	assert.Equal(t, time.Date(2022, 2, 11, 8, 0, 0, 0, time.UTC), board[0].BestTimestamp)

	assert.Equal(t, "Pagudpud", board[1].Location)
	assert.Equal(t, 2, board[1].Wins)
	assert.Equal(t, 5.1, board[1].BestMagnitude)

	assert.Equal(t, "Laoag", board[2].Location)
	assert.Equal(t, 1, board[2].Wins)
	assert.Equal(t, 3.0, board[2].BestMagnitude)
}

func TestLeaderboard_FullTieOrderedByLocation(t *testing.T) {
	extremes := []MonthlyExtreme{
		{Year: 2020, Month: 2, MaxMagnitude: 4.0, Event: Event{Location: "Zambales", Timestamp: time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)}},
		{Year: 2020, Month: 1, MaxMagnitude: 4.0, Event: Event{Location: "Abra", Timestamp: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}},
	}

	board := Leaderboard(extremes)

	require.Len(t, board, 2)
	assert.Equal(t, "Abra", board[0].Location)
	assert.Equal(t, "Zambales", board[1].Location)
}

func TestLeaderboard_Empty(t *testing.T) {
	assert.Empty(t, Leaderboard(nil))
}

func TestTopLeaderboard(t *testing.T) {
	entries := []LeaderboardEntry{{Location: "a"}, {Location: "b"}, {Location: "c"}}

	tests := []struct {
		name     string
		n        int
		expected int
	}{
		{"fewer", 2, 2},
		{"exact", 3, 3},
		{"more", 10, 3},
		{"zero keeps all", 0, 3},
		{"negative keeps all", -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, TopLeaderboard(entries, tt.n), tt.expected)
		})
	}
}
