// Package shift models a recorded work shift: a calendar date plus wall-clock
// entry and exit times.
package shift

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/recargos/internal/apperr"
	"github.com/recargos/internal/calendar"
)

// MinutesPerDay is the length of a full wrapped shift.
const MinutesPerDay = 24 * 60

// Clock is a wall-clock time of day at minute resolution, stored as minutes
// after midnight (0..1439).
type Clock int

// At builds a Clock without validation. Out of range values wrap.
func At(hour, minute int) Clock {
	m := (hour*60 + minute) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return Clock(m)
}

// ParseClock accepts 15:04, 3:04 and 15:04:05. Seconds must be zero since
// shifts are tracked per minute.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "3:04", "15:04:05", "3:04:05"} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Second() != 0 {
			return 0, apperr.Invalid("time", "%q has seconds; use HH:MM", s)
		}
		return At(t.Hour(), t.Minute()), nil
	}
	return 0, apperr.Invalid("time", "%q is not a HH:MM time", s)
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Shift is one worked interval. When Exit is not after Entry the shift ends
// on the following day; Entry == Exit is a full 24 hour shift.
type Shift struct {
	ID    string        `json:"id,omitempty"`
	Date  calendar.Date `json:"date"`
	Entry Clock         `json:"entryTime"`
	Exit  Clock         `json:"exitTime"`
}

// New returns a shift with a fresh ID.
func New(date calendar.Date, entry, exit Clock) Shift {
	return Shift{
		ID:    uuid.NewString(),
		Date:  date,
		Entry: entry,
		Exit:  exit,
	}
}

// Parse builds a shift from its textual parts.
func Parse(date, entry, exit string) (Shift, error) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return Shift{}, err
	}
	in, err := ParseClock(entry)
	if err != nil {
		return Shift{}, fmt.Errorf("entry: %w", err)
	}
	out, err := ParseClock(exit)
	if err != nil {
		return Shift{}, fmt.Errorf("exit: %w", err)
	}
	return New(d, in, out), nil
}

// CrossesMidnight reports whether the exit falls on Date+1.
func (s Shift) CrossesMidnight() bool {
	return s.Exit <= s.Entry
}

// Minutes is the worked length, always in 1..1440.
func (s Shift) Minutes() int {
	if s.CrossesMidnight() {
		return int(s.Exit) - int(s.Entry) + MinutesPerDay
	}
	return int(s.Exit) - int(s.Entry)
}

func (s Shift) Duration() time.Duration {
	return time.Duration(s.Minutes()) * time.Minute
}

// Start is the entry instant on a naive UTC timeline.
func (s Shift) Start() time.Time {
	return s.Date.Time().Add(time.Duration(s.Entry) * time.Minute)
}

// End is the exit instant, one day later for overnight shifts.
func (s Shift) End() time.Time {
	return s.Start().Add(s.Duration())
}

// ShortID is the first block of the ID, enough to address a shift by hand.
func (s Shift) ShortID() string {
	if len(s.ID) < 8 {
		return s.ID
	}
	return s.ID[:8]
}

func (s Shift) String() string {
	suffix := ""
	if s.CrossesMidnight() {
		suffix = " (+1)"
	}
	return fmt.Sprintf("%s %s-%s%s", s.Date, s.Entry, s.Exit, suffix)
}
