package surcharge

import (
	"fmt"
	"strings"
	"time"

	"github.com/recargos/internal/apperr"
	"github.com/recargos/internal/calendar"
)

// ErrPartialRange is returned when only one end of a date filter is given.
var ErrPartialRange = &apperr.ValidationError{
	Field:   "range",
	Message: "both start and end dates are required, or neither",
}

// Range is an inclusive date interval.
type Range struct {
	From calendar.Date
	To   calendar.Date
}

// NewRange parses a filter. Both empty means no filter and yields nil.
func NewRange(from, to string) (*Range, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, ErrPartialRange
	}
	f, err := calendar.ParseDate(from)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	t, err := calendar.ParseDate(to)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	if f.After(t) {
		return nil, apperr.Invalid("range", "start %s is after end %s", f, t)
	}
	return &Range{From: f, To: t}, nil
}

// Month returns the range covering a whole calendar month.
func Month(year int, month time.Month) *Range {
	first := calendar.NewDate(year, month, 1)
	last := calendar.DateOf(first.Time().AddDate(0, 1, -1))
	return &Range{From: first, To: last}
}

// Contains reports whether d is inside r. A nil range contains every date.
func (r *Range) Contains(d calendar.Date) bool {
	if r == nil {
		return true
	}
	return !d.Before(r.From) && !d.After(r.To)
}

func (r *Range) String() string {
	if r == nil {
		return "all dates"
	}
	return fmt.Sprintf("%s to %s", r.From, r.To)
}
