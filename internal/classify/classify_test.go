package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recargos/internal/calendar"
	"github.com/recargos/internal/shift"
)

var (
	saturday = calendar.NewDate(2025, time.March, 1)
	sunday   = calendar.NewDate(2025, time.March, 2)
	monday   = calendar.NewDate(2025, time.March, 3)
)

func mk(d calendar.Date, entry, exit shift.Clock) shift.Shift {
	return shift.Shift{Date: d, Entry: entry, Exit: exit}
}

func TestCategorize(t *testing.T) {
	cal := calendar.New()

	tests := []struct {
		name       string
		dailyHours int
		shift      shift.Shift
		expected   map[Category]int // minutes
	}{
		{
			name:       "weekday day within threshold",
			dailyHours: 8,
			shift:      mk(monday, shift.At(8, 0), shift.At(16, 0)),
			expected:   map[Category]int{OrdinaryDayWeekday: 480},
		},
		{
			name:       "ten hours from 08:00",
			dailyHours: 8,
			shift:      mk(monday, shift.At(8, 0), shift.At(18, 0)),
			expected:   map[Category]int{OrdinaryDayWeekday: 480, OvertimeDayWeekday: 120},
		},
		{
			name:       "ten hours from 09:00",
			dailyHours: 8,
			shift:      mk(monday, shift.At(9, 0), shift.At(19, 0)),
			expected:   map[Category]int{OrdinaryDayWeekday: 480, OvertimeDayWeekday: 120},
		},
		{
			name:       "overnight 18:00-06:00",
			dailyHours: 8,
			shift:      mk(monday, shift.At(18, 0), shift.At(6, 0)),
			expected:   map[Category]int{OrdinaryDayWeekday: 180, OrdinaryNightWeekday: 540},
		},
		{
			name:       "threshold restarts at midnight",
			dailyHours: 8,
			shift:      mk(monday, shift.At(12, 0), shift.At(6, 0)),
			expected: map[Category]int{
				OrdinaryDayWeekday:   480,
				OvertimeDayWeekday:   60,
				OvertimeNightWeekday: 180,
				OrdinaryNightWeekday: 360,
			},
		},
		{
			name:       "saturday night into sunday",
			dailyHours: 8,
			shift:      mk(saturday, shift.At(22, 0), shift.At(6, 0)),
			expected:   map[Category]int{OrdinaryNightWeekday: 120, OrdinaryNightSunday: 360},
		},
		{
			name:       "sunday 24 hours",
			dailyHours: 8,
			shift:      mk(sunday, shift.At(0, 0), shift.At(0, 0)),
			expected: map[Category]int{
				OrdinaryNightSunday: 360,
				OrdinaryDaySunday:   120,
				OvertimeDaySunday:   780,
				OvertimeNightSunday: 180,
			},
		},
		{
			name:       "night boundaries mid hour",
			dailyHours: 8,
			shift:      mk(monday, shift.At(20, 30), shift.At(21, 30)),
			expected:   map[Category]int{OrdinaryDayWeekday: 30, OrdinaryNightWeekday: 30},
		},
		{
			name:       "early morning before 06:00",
			dailyHours: 8,
			shift:      mk(monday, shift.At(5, 0), shift.At(7, 0)),
			expected:   map[Category]int{OrdinaryNightWeekday: 60, OrdinaryDayWeekday: 60},
		},
		{
			name:       "short daily hours",
			dailyHours: 1,
			shift:      mk(monday, shift.At(10, 0), shift.At(12, 0)),
			expected:   map[Category]int{OrdinaryDayWeekday: 60, OvertimeDayWeekday: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Categorize(tt.dailyHours, tt.shift, cal)
			for _, c := range Categories() {
				assert.Equal(t, tt.expected[c], h.Minutes(c), "bucket %s", c)
			}
			assert.Equal(t, tt.shift.Minutes(), h.Total())
		})
	}
}

func TestCategorizeCoversEveryMinute(t *testing.T) {
	cal := calendar.New(monday)
	for _, d := range []calendar.Date{saturday, sunday, monday} {
		for entry := 0; entry < shift.MinutesPerDay; entry += 37 {
			for exit := 0; exit < shift.MinutesPerDay; exit += 53 {
				for _, daily := range []int{1, 8, 12} {
					s := mk(d, shift.Clock(entry), shift.Clock(exit))
					h := Categorize(daily, s, cal)
					require.Equal(t, s.Minutes(), h.Total(), "%s daily=%d", s, daily)
				}
			}
		}
	}
}

func TestHolidayBeatsSunday(t *testing.T) {
	cal := calendar.New(sunday)
	h := Categorize(8, mk(sunday, shift.At(6, 0), shift.At(23, 0)), cal)

	for _, c := range Categories() {
		if c.Day() == calendar.Sunday {
			assert.Zero(t, h.Minutes(c), "bucket %s", c)
		}
	}
	assert.Equal(t, 480, h.Minutes(OrdinaryDayHoliday))
	assert.Equal(t, 420, h.Minutes(OvertimeDayHoliday))
	assert.Equal(t, 120, h.Minutes(OvertimeNightHoliday))
}

func TestDayShiftHasNoNightHours(t *testing.T) {
	cal := calendar.New()
	for entry := shift.At(6, 0); entry < shift.At(21, 0); entry += 15 {
		for exit := entry + 1; exit <= shift.At(21, 0); exit += 25 {
			h := Categorize(8, mk(monday, entry, exit), cal)
			for _, c := range Categories() {
				if c.Night() {
					require.Zero(t, h.Minutes(c), "%s-%s bucket %s", entry, exit, c)
				}
			}
		}
	}
}

func TestIsNight(t *testing.T) {
	tests := []struct {
		clock    shift.Clock
		expected bool
	}{
		{shift.At(0, 0), true},
		{shift.At(5, 59), true},
		{shift.At(6, 0), false},
		{shift.At(12, 0), false},
		{shift.At(20, 59), false},
		{shift.At(21, 0), true},
		{shift.At(23, 59), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsNight(tt.clock), tt.clock.String())
	}
}

func TestCategoryParts(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Categories() {
		assert.Equal(t, c, CategoryOf(c.Overtime(), c.Night(), c.Day()))
		assert.False(t, seen[c.String()], "duplicate name %s", c)
		seen[c.String()] = true
	}
	assert.Len(t, seen, NumCategories)

	assert.Equal(t, "ordinary_day_weekday", OrdinaryDayWeekday.String())
	assert.Equal(t, "overtime_night_holiday", OvertimeNightHoliday.String())
	assert.Equal(t, "Extras nocturnas dominicales", OvertimeNightSunday.Label())
	assert.Equal(t, "Ordinarias diurnas", OrdinaryDayWeekday.Label())
	assert.False(t, OrdinaryDayWeekday.Surcharged())
	assert.True(t, OrdinaryNightWeekday.Surcharged())
	assert.Equal(t, "Category(12)", Category(12).String())
}

func TestHoursArithmetic(t *testing.T) {
	var a, b Hours
	a[OrdinaryDayWeekday] = 480
	a[OvertimeDayWeekday] = 90
	b[OvertimeDayWeekday] = 30
	b[OrdinaryNightSunday] = 60

	sum := a.Add(b)
	assert.Equal(t, 660, sum.Total())
	assert.Equal(t, 180, sum.SurchargedMinutes())
	assert.Equal(t, 2.0, sum.Hours(OvertimeDayWeekday))
	assert.Equal(t, []Category{OrdinaryDayWeekday, OvertimeDayWeekday, OrdinaryNightSunday}, sum.Nonzero())

	// Operands are values.
	assert.Equal(t, 90, a.Minutes(OvertimeDayWeekday))
}
