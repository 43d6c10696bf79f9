package domain

// Day/night split and felt threshold used by the tallies.
const (
	DayStartHour  = 6  // first daytime hour, inclusive
	DayEndHour    = 17 // last daytime hour, inclusive
	FeltThreshold = 4.0
)

// IsDayHour reports whether h falls in the daytime hour set. Every hour in
// [0, 23] that is not a day hour is a night hour.
func IsDayHour(h int) bool {
	return h >= DayStartHour && h <= DayEndHour
}

// IsFelt reports whether the event's magnitude reaches FeltThreshold.
func IsFelt(e Event) bool {
	return e.HasMagnitude() && *e.Magnitude >= FeltThreshold
}

// TallyDayNight counts every event by day or night hour. Events without a
// magnitude are included.
func TallyDayNight(events []Event) DayNightTally {
	return tally(events, nil)
}

// TallyFelt is TallyDayNight restricted to felt events.
func TallyFelt(events []Event) DayNightTally {
	return tally(events, IsFelt)
}

func tally(events []Event, keep func(Event) bool) DayNightTally {
	var t DayNightTally
	for _, e := range events {
		if keep != nil && !keep(e) {
			continue
		}
		if IsDayHour(e.Hour) {
			t.Day++
		} else {
			t.Night++
		}
	}
	t.Total = t.Day + t.Night
	if t.Total > 0 {
		t.DayRatio = float64(t.Day) / float64(t.Total)
		t.NightRatio = float64(t.Night) / float64(t.Total)
	}
	return t
}
