// Package calendar answers whether a date is an ordinary weekday, a Sunday or
// a registered holiday.
package calendar

import (
	"fmt"
	"sort"
	"time"
)

// DayClass is the rate class of a calendar date.
type DayClass int

const (
	Weekday DayClass = iota
	Sunday
	Holiday
)

func (c DayClass) String() string {
	switch c {
	case Sunday:
		return "sunday"
	case Holiday:
		return "holiday"
	default:
		return "weekday"
	}
}

// SundayOrHoliday reports whether the class carries the Sunday/holiday rates.
func (c DayClass) SundayOrHoliday() bool {
	return c == Sunday || c == Holiday
}

// Calendar is a set of holiday dates. The zero value is not usable; call New
// or Default.
type Calendar struct {
	holidays map[Date]struct{}
}

// New returns a calendar holding the given holidays. Duplicates collapse.
func New(holidays ...Date) *Calendar {
	c := &Calendar{holidays: make(map[Date]struct{}, len(holidays))}
	for _, d := range holidays {
		c.holidays[d] = struct{}{}
	}
	return c
}

// Default returns the calendar preloaded with the 2025 Colombian public
// holidays.
func Default() *Calendar {
	return New(Colombia2025()...)
}

// Colombia2025 lists the 2025 Colombian public holidays.
func Colombia2025() []Date {
	return []Date{
		{2025, time.January, 1},   // Año Nuevo
		{2025, time.January, 6},   // Reyes Magos
		{2025, time.March, 24},    // San José
		{2025, time.April, 17},    // Jueves Santo
		{2025, time.April, 18},    // Viernes Santo
		{2025, time.May, 1},       // Día del Trabajo
		{2025, time.June, 2},      // Ascensión
		{2025, time.June, 23},     // Corpus Christi
		{2025, time.June, 30},     // Sagrado Corazón
		{2025, time.July, 20},     // Independencia
		{2025, time.August, 7},    // Batalla de Boyacá
		{2025, time.August, 18},   // Asunción de la Virgen
		{2025, time.October, 13},  // Día de la Raza
		{2025, time.November, 3},  // Todos los Santos
		{2025, time.November, 17}, // Independencia de Cartagena
		{2025, time.December, 8},  // Inmaculada Concepción
		{2025, time.December, 25}, // Navidad
	}
}

func (c *Calendar) IsHoliday(d Date) bool {
	_, ok := c.holidays[d]
	return ok
}

func (c *Calendar) IsSunday(d Date) bool {
	return d.Weekday() == time.Sunday
}

func (c *Calendar) IsSundayOrHoliday(d Date) bool {
	return c.IsHoliday(d) || c.IsSunday(d)
}

// Classify returns the rate class of d. A holiday that falls on a Sunday is
// a Holiday.
func (c *Calendar) Classify(d Date) DayClass {
	switch {
	case c.IsHoliday(d):
		return Holiday
	case c.IsSunday(d):
		return Sunday
	default:
		return Weekday
	}
}

// Add registers d as a holiday. It reports false with an explanation when d
// was already registered.
func (c *Calendar) Add(d Date) (bool, string) {
	if c.IsHoliday(d) {
		return false, fmt.Sprintf("%s is already a holiday", d)
	}
	c.holidays[d] = struct{}{}
	return true, fmt.Sprintf("holiday %s added", d)
}

// Remove unregisters d. It reports false with an explanation when d was not a
// holiday.
func (c *Calendar) Remove(d Date) (bool, string) {
	if !c.IsHoliday(d) {
		return false, fmt.Sprintf("%s is not in the holiday list", d)
	}
	delete(c.holidays, d)
	return true, fmt.Sprintf("holiday %s removed", d)
}

// Dates returns the holidays in ascending order.
func (c *Calendar) Dates() []Date {
	dates := make([]Date, 0, len(c.holidays))
	for d := range c.holidays {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func (c *Calendar) Len() int {
	return len(c.holidays)
}

// Clone returns an independent copy.
func (c *Calendar) Clone() *Calendar {
	return New(c.Dates()...)
}
