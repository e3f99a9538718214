package rates

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recargos/internal/apperr"
	"github.com/recargos/internal/calendar"
)

// =============================================================================
// SURCHARGE RULES
// =============================================================================
// Defaults follow Colombian labor law (Código Sustantivo del Trabajo).
// Every value is a total multiplier over the ordinary hourly rate:
// 1.25 pays 125% of the base hour.
//
// Ordinary weekday day hours are always paid at 1.00 and are not configurable.
// =============================================================================

// Symbol names one configurable multiplier.
type Symbol string

const (
	ExtraDay       Symbol = "M_EXTRA_DAY"
	ExtraNight     Symbol = "M_EXTRA_NIGHT"
	OrdNight       Symbol = "M_ORD_NIGHT"
	ExtraDaySH     Symbol = "M_EXTRA_DAY_SH"
	ExtraNightSH   Symbol = "M_EXTRA_NIGHT_SH"
	OrdDaySHBase   Symbol = "M_ORD_DAY_SH_BASE"
	OrdDaySHLong   Symbol = "M_ORD_DAY_SH_LONG"
	OrdNightSHBase Symbol = "M_ORD_NIGHT_SH_BASE"
	OrdNightSHLong Symbol = "M_ORD_NIGHT_SH_LONG"
)

const (
	// LongShift is the shift length from which ordinary Sunday/holiday hours
	// use the long tier. Anything shorter, including 22h-23h, is base tier.
	LongShift = 23 * time.Hour

	// MaxMultiplier bounds every stored multiplier: base plus the largest
	// additional percentage an update accepts (300%).
	MaxMultiplier = 4.0
)

// Symbols returns every symbol in display order.
func Symbols() []Symbol {
	return []Symbol{
		ExtraDay, ExtraNight, OrdNight,
		ExtraDaySH, ExtraNightSH,
		OrdDaySHBase, OrdDaySHLong,
		OrdNightSHBase, OrdNightSHLong,
	}
}

// Describe returns a human label for s.
func (s Symbol) Describe() string {
	switch s {
	case ExtraDay:
		return "overtime, weekday, day"
	case ExtraNight:
		return "overtime, weekday, night"
	case OrdNight:
		return "ordinary, weekday, night"
	case ExtraDaySH:
		return "overtime, Sunday/holiday, day"
	case ExtraNightSH:
		return "overtime, Sunday/holiday, night"
	case OrdDaySHBase:
		return "ordinary, Sunday/holiday, day (< 23h shift)"
	case OrdDaySHLong:
		return "ordinary, Sunday/holiday, day (>= 23h shift)"
	case OrdNightSHBase:
		return "ordinary, Sunday/holiday, night (< 23h shift)"
	case OrdNightSHLong:
		return "ordinary, Sunday/holiday, night (>= 23h shift)"
	}
	return string(s)
}

// Table holds the nine multipliers. It is a value: Apply returns a modified
// copy and never touches the receiver.
type Table struct {
	ExtraDay       float64 `json:"M_EXTRA_DAY" yaml:"M_EXTRA_DAY"`
	ExtraNight     float64 `json:"M_EXTRA_NIGHT" yaml:"M_EXTRA_NIGHT"`
	OrdNight       float64 `json:"M_ORD_NIGHT" yaml:"M_ORD_NIGHT"`
	ExtraDaySH     float64 `json:"M_EXTRA_DAY_SH" yaml:"M_EXTRA_DAY_SH"`
	ExtraNightSH   float64 `json:"M_EXTRA_NIGHT_SH" yaml:"M_EXTRA_NIGHT_SH"`
	OrdDaySHBase   float64 `json:"M_ORD_DAY_SH_BASE" yaml:"M_ORD_DAY_SH_BASE"`
	OrdDaySHLong   float64 `json:"M_ORD_DAY_SH_LONG" yaml:"M_ORD_DAY_SH_LONG"`
	OrdNightSHBase float64 `json:"M_ORD_NIGHT_SH_BASE" yaml:"M_ORD_NIGHT_SH_BASE"`
	OrdNightSHLong float64 `json:"M_ORD_NIGHT_SH_LONG" yaml:"M_ORD_NIGHT_SH_LONG"`
}

// Default returns the statutory multipliers.
func Default() Table {
	return Table{
		ExtraDay:       1.25,
		ExtraNight:     1.75,
		OrdNight:       1.35,
		ExtraDaySH:     2.00,
		ExtraNightSH:   2.50,
		OrdDaySHBase:   1.80,
		OrdDaySHLong:   2.80,
		OrdNightSHBase: 2.10,
		OrdNightSHLong: 3.10,
	}
}

func (t *Table) field(s Symbol) *float64 {
	switch s {
	case ExtraDay:
		return &t.ExtraDay
	case ExtraNight:
		return &t.ExtraNight
	case OrdNight:
		return &t.OrdNight
	case ExtraDaySH:
		return &t.ExtraDaySH
	case ExtraNightSH:
		return &t.ExtraNightSH
	case OrdDaySHBase:
		return &t.OrdDaySHBase
	case OrdDaySHLong:
		return &t.OrdDaySHLong
	case OrdNightSHBase:
		return &t.OrdNightSHBase
	case OrdNightSHLong:
		return &t.OrdNightSHLong
	}
	return nil
}

// Get returns the multiplier stored under s, or 0 for an unknown symbol.
func (t Table) Get(s Symbol) float64 {
	if f := t.field(s); f != nil {
		return *f
	}
	return 0
}

// With returns a copy of t with the raw multiplier v stored under s. Range
// checks are left to Validate.
func (t Table) With(s Symbol, v float64) (Table, error) {
	f := t.field(s)
	if f == nil {
		return t, apperr.Invalid("symbol", "unknown rate %q", string(s))
	}
	*f = v
	return t, nil
}

// Validate checks every multiplier lies in [0, MaxMultiplier].
func (t Table) Validate() error {
	for _, s := range Symbols() {
		v := t.Get(s)
		if !(v >= 0 && v <= MaxMultiplier) {
			return apperr.Invalid(string(s), "multiplier %.2f outside [0, %.2f]", v, MaxMultiplier)
		}
	}
	return nil
}

// Class is the part of a bucket key a multiplier depends on.
type Class struct {
	Overtime bool
	Night    bool
	Day      calendar.DayClass
}

// Symbol returns the rule that prices c for a shift of the given length, and
// false for ordinary weekday day hours which carry no surcharge.
func (c Class) Symbol(shiftLength time.Duration) (Symbol, bool) {
	long := shiftLength >= LongShift
	if !c.Day.SundayOrHoliday() {
		switch {
		case c.Overtime && c.Night:
			return ExtraNight, true
		case c.Overtime:
			return ExtraDay, true
		case c.Night:
			return OrdNight, true
		default:
			return "", false
		}
	}
	switch {
	case c.Overtime && c.Night:
		return ExtraNightSH, true
	case c.Overtime:
		return ExtraDaySH, true
	case c.Night && long:
		return OrdNightSHLong, true
	case c.Night:
		return OrdNightSHBase, true
	case long:
		return OrdDaySHLong, true
	default:
		return OrdDaySHBase, true
	}
}

// EffectiveMultiplier returns the total multiplier for hours of class c in a
// shift of the given length.
func (t Table) EffectiveMultiplier(c Class, shiftLength time.Duration) decimal.Decimal {
	s, ok := c.Symbol(shiftLength)
	if !ok {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(t.Get(s))
}

func (t Table) String() string {
	return fmt.Sprintf("extra day %.2f, extra night %.2f, ord night %.2f, S/H extra day %.2f, S/H extra night %.2f, "+
		"S/H ord day %.2f/%.2f, S/H ord night %.2f/%.2f",
		t.ExtraDay, t.ExtraNight, t.OrdNight, t.ExtraDaySH, t.ExtraNightSH,
		t.OrdDaySHBase, t.OrdDaySHLong, t.OrdNightSHBase, t.OrdNightSHLong)
}
