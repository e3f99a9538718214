package classify

import (
	"github.com/recargos/internal/calendar"
	"github.com/recargos/internal/shift"
)

// Night window bounds, in minutes after midnight.
const (
	NightStart = 21 * 60
	NightEnd   = 6 * 60
)

// Classifier tells the day class of a date. *calendar.Calendar satisfies it.
type Classifier interface {
	Classify(d calendar.Date) calendar.DayClass
}

// IsNight reports whether the minute starting at clock falls in the night
// window [21:00, 06:00).
func IsNight(clock shift.Clock) bool {
	return int(clock) >= NightStart || int(clock) < NightEnd
}

// Categorize sweeps the shift one minute at a time and counts each minute in
// its bucket. The overtime threshold of dailyHours applies per calendar date:
// the counter restarts when the sweep crosses midnight.
func Categorize(dailyHours int, s shift.Shift, days Classifier) Hours {
	var h Hours

	limit := dailyHours * 60
	date := s.Date
	day := days.Classify(date)
	clock := int(s.Entry)
	worked := 0

	for i, n := 0, s.Minutes(); i < n; i++ {
		if clock == shift.MinutesPerDay {
			clock = 0
			date = date.AddDays(1)
			day = days.Classify(date)
			worked = 0
		}
		worked++
		h[CategoryOf(worked > limit, IsNight(shift.Clock(clock)), day)]++
		clock++
	}
	return h
}
