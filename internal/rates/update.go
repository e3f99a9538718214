package rates

import (
	"fmt"
	"strings"

	"github.com/recargos/internal/apperr"
)

// Mode tells how the percentages of an Update are read.
type Mode int

const (
	// TotalPercent reads 125 as a 1.25 multiplier. Accepted range [0, 350].
	TotalPercent Mode = iota
	// AdditionalPercent reads 25 as a 1.25 multiplier. Accepted range [0, 300].
	AdditionalPercent
)

func (m Mode) limit() float64 {
	if m == AdditionalPercent {
		return 300
	}
	return 350
}

func (m Mode) multiplier(p float64) float64 {
	if m == AdditionalPercent {
		return 1 + p/100
	}
	return p / 100
}

func (m Mode) String() string {
	if m == AdditionalPercent {
		return "additional"
	}
	return "total"
}

// Update is a partial change to a Table. Build it with Total or Additional
// and the per-symbol setters; unset symbols keep their value.
type Update struct {
	mode   Mode
	values map[Symbol]float64
	order  []Symbol
}

// Total starts an update expressed in total percentages.
func Total() Update {
	return Update{mode: TotalPercent}
}

// Additional starts an update expressed in percentages over the base rate.
func Additional() Update {
	return Update{mode: AdditionalPercent}
}

// Set records a percentage for s. Setting the same symbol twice keeps the
// last value.
func (u Update) Set(s Symbol, percent float64) Update {
	values := make(map[Symbol]float64, len(u.values)+1)
	for k, v := range u.values {
		values[k] = v
	}
	order := u.order
	if _, seen := values[s]; !seen {
		order = append(append([]Symbol(nil), u.order...), s)
	}
	values[s] = percent
	return Update{mode: u.mode, values: values, order: order}
}

func (u Update) ExtraDay(p float64) Update       { return u.Set(ExtraDay, p) }
func (u Update) ExtraNight(p float64) Update     { return u.Set(ExtraNight, p) }
func (u Update) OrdNight(p float64) Update       { return u.Set(OrdNight, p) }
func (u Update) ExtraDaySH(p float64) Update     { return u.Set(ExtraDaySH, p) }
func (u Update) ExtraNightSH(p float64) Update   { return u.Set(ExtraNightSH, p) }
func (u Update) OrdDaySHBase(p float64) Update   { return u.Set(OrdDaySHBase, p) }
func (u Update) OrdDaySHLong(p float64) Update   { return u.Set(OrdDaySHLong, p) }
func (u Update) OrdNightSHBase(p float64) Update { return u.Set(OrdNightSHBase, p) }
func (u Update) OrdNightSHLong(p float64) Update { return u.Set(OrdNightSHLong, p) }

// Mode returns how the update's percentages are read.
func (u Update) Mode() Mode { return u.mode }

// Len is the number of symbols the update touches.
func (u Update) Len() int { return len(u.values) }

// Apply validates the whole update and returns the resulting table together
// with one line per changed symbol. On error t is returned unchanged.
func (t Table) Apply(u Update) (Table, []string, error) {
	if len(u.values) == 0 {
		return t, nil, apperr.Invalid("rates", "no rate updated")
	}

	limit := u.mode.limit()
	for _, s := range u.order {
		if t.field(s) == nil {
			return t, nil, apperr.Invalid("rates", "unknown rate %q", s)
		}
		p := u.values[s]
		if !(p >= 0 && p <= limit) {
			return t, nil, apperr.Invalid(string(s), "%s percentage %g outside [0, %g]", u.mode, p, limit)
		}
	}

	next := t
	messages := make([]string, 0, len(u.order))
	for _, s := range u.order {
		p := u.values[s]
		m := u.mode.multiplier(p)
		*next.field(s) = m
		messages = append(messages, fmt.Sprintf("%s updated to %g%% (multiplier %.2f)", s, p, m))
	}
	return next, messages, nil
}

// ParseSymbol accepts a symbol name case-insensitively, with or without the
// M_ prefix.
func ParseSymbol(name string) (Symbol, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(n, "M_") {
		n = "M_" + n
	}
	for _, s := range Symbols() {
		if string(s) == n {
			return s, nil
		}
	}
	return "", apperr.Invalid("rate", "unknown rate %q", name)
}
