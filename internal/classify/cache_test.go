package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recargos/internal/calendar"
	"github.com/recargos/internal/shift"
)

func TestCacheMatchesCategorize(t *testing.T) {
	c, err := NewCache(0)
	require.NoError(t, err)
	cal := calendar.New(monday)

	shifts := []shift.Shift{
		mk(saturday, shift.At(22, 0), shift.At(6, 0)),
		mk(sunday, shift.At(0, 0), shift.At(0, 0)),
		mk(monday, shift.At(8, 0), shift.At(18, 0)),
		mk(sunday, shift.At(18, 0), shift.At(6, 0)),
	}
	for round := 0; round < 2; round++ {
		for _, s := range shifts {
			assert.Equal(t, Categorize(8, s, cal), c.Categorize(8, s, cal), s.String())
		}
	}

	hits, misses := c.Stats()
	assert.Equal(t, len(shifts), hits)
	assert.Equal(t, len(shifts), misses)
	assert.Equal(t, len(shifts), c.Len())
}

func TestCacheKeyFollowsCalendar(t *testing.T) {
	c, err := NewCache(4)
	require.NoError(t, err)
	s := mk(monday, shift.At(8, 0), shift.At(16, 0))

	plain := c.Categorize(8, s, calendar.New())
	holiday := c.Categorize(8, s, calendar.New(monday))

	assert.Equal(t, 480, plain.Minutes(OrdinaryDayWeekday))
	assert.Equal(t, 480, holiday.Minutes(OrdinaryDayHoliday))

	// Same hours on another Monday reuse the entry.
	next := mk(monday.AddDays(7), shift.At(8, 0), shift.At(16, 0))
	assert.Equal(t, plain, c.Categorize(8, next, calendar.New()))
	hits, _ := c.Stats()
	assert.Equal(t, 1, hits)
}

func TestCacheEvicts(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)
	cal := calendar.New()
	for h := 0; h < 5; h++ {
		c.Categorize(8, mk(monday, shift.At(h, 0), shift.At(h+1, 0)), cal)
	}
	assert.Equal(t, 2, c.Len())
}
