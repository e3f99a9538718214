// Package surcharge turns classified hours into money.
package surcharge

import (
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/recargos/internal/classify"
	"github.com/recargos/internal/rates"
	"github.com/recargos/internal/roster"
	"github.com/recargos/internal/shift"
)

var minutesPerHour = decimal.NewFromInt(60)

// Money holds per-bucket values plus their totals.
type Money struct {
	Gross     [classify.NumCategories]decimal.Decimal
	Surcharge [classify.NumCategories]decimal.Decimal

	GrossTotal     decimal.Decimal
	SurchargeTotal decimal.Decimal
}

func (m *Money) add(o Money) {
	for i := range m.Gross {
		m.Gross[i] = m.Gross[i].Add(o.Gross[i])
		m.Surcharge[i] = m.Surcharge[i].Add(o.Surcharge[i])
	}
	m.GrossTotal = m.GrossTotal.Add(o.GrossTotal)
	m.SurchargeTotal = m.SurchargeTotal.Add(o.SurchargeTotal)
}

// Line is one nonzero bucket ready for display.
type Line struct {
	Category  classify.Category
	Minutes   int
	Gross     decimal.Decimal
	Surcharge decimal.Decimal
}

func (l Line) Hours() float64 { return float64(l.Minutes) / 60 }

func lines(h classify.Hours, m Money) []Line {
	var out []Line
	for _, c := range h.Nonzero() {
		out = append(out, Line{
			Category:  c,
			Minutes:   h.Minutes(c),
			Gross:     m.Gross[c],
			Surcharge: m.Surcharge[c],
		})
	}
	return out
}

// ShiftResult is the breakdown of a single shift.
type ShiftResult struct {
	Shift       shift.Shift
	Hours       classify.Hours
	Multipliers [classify.NumCategories]decimal.Decimal
	Money
}

// SurchargedMinutes counts every minute outside ordinary weekday day.
func (r ShiftResult) SurchargedMinutes() int { return r.Hours.SurchargedMinutes() }

func (r ShiftResult) Lines() []Line { return lines(r.Hours, r.Money) }

// Summary aggregates the shifts of one employee.
type Summary struct {
	Employee   string
	HourlyRate decimal.Decimal
	Shifts     []ShiftResult
	Hours      classify.Hours
	Money
}

func (s Summary) SurchargedMinutes() int { return s.Hours.SurchargedMinutes() }

func (s Summary) Lines() []Line { return lines(s.Hours, s.Money) }

// Consolidated aggregates several employees over an optional date range.
type Consolidated struct {
	Range     *Range
	Employees []Summary
	Hours     classify.Hours
	Money
}

func (c Consolidated) SurchargedMinutes() int { return c.Hours.SurchargedMinutes() }

func (c Consolidated) Lines() []Line { return lines(c.Hours, c.Money) }

// ShiftCount is the number of shifts that went into c.
func (c Consolidated) ShiftCount() int {
	n := 0
	for _, s := range c.Employees {
		n += len(s.Shifts)
	}
	return n
}

// Calculator prices shifts against one rate table and calendar. Build one per
// request; it holds no global state.
type Calculator struct {
	rates rates.Table
	days  classify.Classifier
	cache *classify.Cache
}

// New returns a calculator. cache may be nil.
func New(t rates.Table, days classify.Classifier, cache *classify.Cache) *Calculator {
	return &Calculator{rates: t, days: days, cache: cache}
}

func (c *Calculator) categorize(dailyHours int, s shift.Shift) classify.Hours {
	if c.cache != nil {
		return c.cache.Categorize(dailyHours, s, c.days)
	}
	return classify.Categorize(dailyHours, s, c.days)
}

// Shift computes one shift for emp.
func (c *Calculator) Shift(emp *roster.Employee, s shift.Shift) ShiftResult {
	rate := emp.HourlyRate()
	res := ShiftResult{
		Shift: s,
		Hours: c.categorize(emp.DailyHours(), s),
	}
	for _, cat := range classify.Categories() {
		mult := c.rates.EffectiveMultiplier(cat.Class(), s.Duration())
		res.Multipliers[cat] = mult

		minutes := res.Hours.Minutes(cat)
		if minutes == 0 {
			continue
		}
		base := rate.Mul(decimal.NewFromInt(int64(minutes))).Div(minutesPerHour)
		gross := base.Mul(mult)
		res.Gross[cat] = gross
		res.Surcharge[cat] = gross.Sub(base)
		res.GrossTotal = res.GrossTotal.Add(gross)
		res.SurchargeTotal = res.SurchargeTotal.Add(res.Surcharge[cat])
	}
	return res
}

// Employee sums the given shifts of emp.
func (c *Calculator) Employee(emp *roster.Employee, shifts []shift.Shift) Summary {
	sum := Summary{
		Employee:   emp.Name,
		HourlyRate: emp.HourlyRate(),
		Shifts:     make([]ShiftResult, 0, len(shifts)),
	}
	for _, s := range shifts {
		res := c.Shift(emp, s)
		sum.Shifts = append(sum.Shifts, res)
		sum.Hours = sum.Hours.Add(res.Hours)
		sum.add(res.Money)
	}
	return sum
}

// Consolidated computes every employee over r. A nil range takes all shifts.
func (c *Calculator) Consolidated(emps []*roster.Employee, r *Range) Consolidated {
	out := Consolidated{Range: r}
	for _, emp := range emps {
		var shifts []shift.Shift
		for _, s := range emp.Shifts {
			if r.Contains(s.Date) {
				shifts = append(shifts, s)
			}
		}
		sum := c.Employee(emp, shifts)
		out.Employees = append(out.Employees, sum)
		out.Hours = out.Hours.Add(sum.Hours)
		out.add(sum.Money)
	}
	if c.cache != nil {
		hits, misses := c.cache.Stats()
		log.Debugf("classification cache: %d hits, %d misses", hits, misses)
	}
	log.WithFields(log.Fields{
		"employees": len(out.Employees),
		"shifts":    out.ShiftCount(),
		"range":     r.String(),
	}).Debug("consolidated report computed")
	return out
}
