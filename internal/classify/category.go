// Package classify splits a shift into the twelve hour categories that carry
// different surcharges.
package classify

import (
	"fmt"

	"github.com/recargos/internal/calendar"
	"github.com/recargos/internal/rates"
)

// Category is one of {ordinary, overtime} x {day, night} x {weekday, Sunday,
// holiday}. The zero value is ordinary weekday day.
type Category int

const (
	OrdinaryDayWeekday Category = iota
	OrdinaryNightWeekday
	OvertimeDayWeekday
	OvertimeNightWeekday
	OrdinaryDaySunday
	OrdinaryNightSunday
	OvertimeDaySunday
	OvertimeNightSunday
	OrdinaryDayHoliday
	OrdinaryNightHoliday
	OvertimeDayHoliday
	OvertimeNightHoliday

	NumCategories = 12
)

// CategoryOf builds the category for one worked minute.
func CategoryOf(overtime, night bool, day calendar.DayClass) Category {
	c := Category(int(day) * 4)
	if overtime {
		c += 2
	}
	if night {
		c++
	}
	return c
}

// Categories returns all twelve categories in display order.
func Categories() []Category {
	out := make([]Category, NumCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

func (c Category) Overtime() bool { return int(c)%4 >= 2 }
func (c Category) Night() bool    { return int(c)%2 == 1 }

func (c Category) Day() calendar.DayClass {
	return calendar.DayClass(int(c) / 4)
}

// Class drops the category down to what the rate table prices.
func (c Category) Class() rates.Class {
	return rates.Class{Overtime: c.Overtime(), Night: c.Night(), Day: c.Day()}
}

// Surcharged reports whether hours in c are paid above the ordinary rate.
func (c Category) Surcharged() bool {
	return c != OrdinaryDayWeekday
}

func (c Category) Valid() bool {
	return c >= 0 && c < NumCategories
}

// String is the stable key used in exports, e.g. "overtime_night_sunday".
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	kind := "ordinary"
	if c.Overtime() {
		kind = "overtime"
	}
	window := "day"
	if c.Night() {
		window = "night"
	}
	return kind + "_" + window + "_" + c.Day().String()
}

// Label is the display name printed on reports.
func (c Category) Label() string {
	if !c.Valid() {
		return c.String()
	}
	var label string
	switch {
	case c.Overtime() && c.Night():
		label = "Extras nocturnas"
	case c.Overtime():
		label = "Extras diurnas"
	case c.Night():
		label = "Ordinarias nocturnas"
	default:
		label = "Ordinarias diurnas"
	}
	switch c.Day() {
	case calendar.Sunday:
		label += " dominicales"
	case calendar.Holiday:
		label += " festivas"
	}
	return label
}

// Hours holds worked minutes per category.
type Hours [NumCategories]int

// Minutes returns the minutes recorded in c.
func (h Hours) Minutes(c Category) int {
	return h[c]
}

// Hours returns the time recorded in c as fractional hours.
func (h Hours) Hours(c Category) float64 {
	return float64(h[c]) / 60
}

// Total is the sum of every bucket, in minutes.
func (h Hours) Total() int {
	total := 0
	for _, m := range h {
		total += m
	}
	return total
}

// SurchargedMinutes sums every bucket except ordinary weekday day.
func (h Hours) SurchargedMinutes() int {
	return h.Total() - h[OrdinaryDayWeekday]
}

// Add returns the bucket-wise sum of h and o.
func (h Hours) Add(o Hours) Hours {
	for i := range h {
		h[i] += o[i]
	}
	return h
}

// Nonzero lists the categories holding any time, in display order.
func (h Hours) Nonzero() []Category {
	var out []Category
	for i, m := range h {
		if m != 0 {
			out = append(out, Category(i))
		}
	}
	return out
}
