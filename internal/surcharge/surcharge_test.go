package surcharge

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recargos/internal/apperr"
	"github.com/recargos/internal/calendar"
	"github.com/recargos/internal/classify"
	"github.com/recargos/internal/rates"
	"github.com/recargos/internal/roster"
	"github.com/recargos/internal/shift"
)

var (
	sunday = calendar.NewDate(2025, time.March, 2)
	monday = calendar.NewDate(2025, time.March, 3)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func employee(t *testing.T, name string) *roster.Employee {
	t.Helper()
	e, err := roster.NewEmployee(name, dec("1423400"), 8, "")
	require.NoError(t, err)
	return e
}

func assertDecimal(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(expected)), "expected %s, got %s", expected, got)
}

func TestSundayDayShift(t *testing.T) {
	calc := New(rates.Default(), calendar.New(), nil)
	res := calc.Shift(employee(t, "Ana"), shift.New(sunday, shift.At(8, 0), shift.At(16, 0)))

	assert.Equal(t, 480, res.Hours.Minutes(classify.OrdinaryDaySunday))
	assert.Equal(t, 480, res.Hours.Total())
	assertDecimal(t, "1.8", res.Multipliers[classify.OrdinaryDaySunday])
	assertDecimal(t, "93168", res.Gross[classify.OrdinaryDaySunday])
	assertDecimal(t, "41408", res.Surcharge[classify.OrdinaryDaySunday])
	assertDecimal(t, "93168", res.GrossTotal)
	assertDecimal(t, "41408", res.SurchargeTotal)
	assert.Equal(t, 480, res.SurchargedMinutes())
}

func TestGrossDecomposes(t *testing.T) {
	emp := employee(t, "Ana")
	calc := New(rates.Default(), calendar.New(monday), nil)
	rate := emp.HourlyRate()

	shifts := []shift.Shift{
		shift.New(monday, shift.At(8, 0), shift.At(18, 0)),
		shift.New(sunday, shift.At(0, 0), shift.At(0, 0)),
		shift.New(sunday, shift.At(18, 0), shift.At(6, 0)),
		shift.New(monday.AddDays(1), shift.At(21, 30), shift.At(7, 15)),
	}
	for _, s := range shifts {
		res := calc.Shift(emp, s)
		for _, c := range classify.Categories() {
			base := rate.Mul(decimal.NewFromInt(int64(res.Hours.Minutes(c)))).Div(decimal.NewFromInt(60))
			assert.True(t, base.Add(res.Surcharge[c]).Equal(res.Gross[c]), "%s %s", s, c)
		}
		assert.True(t, res.Surcharge[classify.OrdinaryDayWeekday].IsZero())
	}
}

func TestLongShiftTier(t *testing.T) {
	calc := New(rates.Default(), calendar.New(), nil)
	emp := employee(t, "Ana")

	tests := []struct {
		name     string
		shift    shift.Shift
		expected string
	}{
		{"8h uses base", shift.New(sunday, shift.At(8, 0), shift.At(16, 0)), "1.8"},
		{"22h30 uses base", shift.New(sunday, shift.At(1, 0), shift.At(23, 30)), "1.8"},
		{"23h uses long", shift.New(sunday, shift.At(0, 30), shift.At(23, 30)), "2.8"},
		{"24h uses long", shift.New(sunday, shift.At(0, 0), shift.At(0, 0)), "2.8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := calc.Shift(emp, tt.shift)
			assertDecimal(t, tt.expected, res.Multipliers[classify.OrdinaryDaySunday])
		})
	}
}

func TestFullSundayShift(t *testing.T) {
	calc := New(rates.Default(), calendar.New(), nil)
	res := calc.Shift(employee(t, "Ana"), shift.New(sunday, shift.At(0, 0), shift.At(0, 0)))

	assert.Equal(t, 360, res.Hours.Minutes(classify.OrdinaryNightSunday))
	assert.Equal(t, 120, res.Hours.Minutes(classify.OrdinaryDaySunday))
	assert.Equal(t, 780, res.Hours.Minutes(classify.OvertimeDaySunday))
	assert.Equal(t, 180, res.Hours.Minutes(classify.OvertimeNightSunday))

	// 6470/h: 6*3.10 + 2*2.80 + 13*2.00 + 3*2.50 = 57.7 base hours
	assertDecimal(t, "373319", res.GrossTotal)
	assertDecimal(t, "218039", res.SurchargeTotal)
}

func TestEmployeeSumsShifts(t *testing.T) {
	calc := New(rates.Default(), calendar.New(), nil)
	emp := employee(t, "Ana")
	shifts := []shift.Shift{
		shift.New(sunday, shift.At(8, 0), shift.At(16, 0)),
		shift.New(monday, shift.At(9, 0), shift.At(19, 0)),
	}

	sum := calc.Employee(emp, shifts)
	require.Len(t, sum.Shifts, 2)
	assert.Equal(t, "Ana", sum.Employee)
	assertDecimal(t, "6470", sum.HourlyRate)
	assert.Equal(t, 480, sum.Hours.Minutes(classify.OrdinaryDaySunday))
	assert.Equal(t, 480, sum.Hours.Minutes(classify.OrdinaryDayWeekday))
	assert.Equal(t, 120, sum.Hours.Minutes(classify.OvertimeDayWeekday))
	assert.Equal(t, 600, sum.SurchargedMinutes())

	// Monday: 8*6470 + 2*6470*1.25 = 51760 + 16175
	assertDecimal(t, "161103", sum.GrossTotal)
	assertDecimal(t, "44643", sum.SurchargeTotal)

	lines := sum.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, classify.OrdinaryDayWeekday, lines[0].Category)
	assert.Equal(t, 2.0, lines[1].Hours())
}

func TestConsolidatedWithRange(t *testing.T) {
	calc := New(rates.Default(), calendar.New(), nil)
	ana := employee(t, "Ana")
	ana.AddShift(shift.New(sunday, shift.At(8, 0), shift.At(16, 0)))
	ana.AddShift(shift.New(monday.AddDays(30), shift.At(8, 0), shift.At(16, 0)))
	luis := employee(t, "Luis")
	luis.AddShift(shift.New(monday, shift.At(9, 0), shift.At(19, 0)))

	all := calc.Consolidated([]*roster.Employee{ana, luis}, nil)
	assert.Equal(t, 3, all.ShiftCount())
	assert.Equal(t, 480+480+600, all.Hours.Total())

	r, err := NewRange("2025-03-01", "2025-03-31")
	require.NoError(t, err)
	march := calc.Consolidated([]*roster.Employee{ana, luis}, r)
	require.Len(t, march.Employees, 2)
	assert.Len(t, march.Employees[0].Shifts, 1)
	assert.Len(t, march.Employees[1].Shifts, 1)
	assertDecimal(t, "41408", march.Employees[0].SurchargeTotal)
	assertDecimal(t, "41408", march.SurchargeTotal.Sub(march.Employees[1].SurchargeTotal))
	assertDecimal(t, march.Employees[0].GrossTotal.Add(march.Employees[1].GrossTotal).String(), march.GrossTotal)
}

func TestConsolidatedUsesCache(t *testing.T) {
	cache, err := classify.NewCache(16)
	require.NoError(t, err)
	cal := calendar.New()
	ana := employee(t, "Ana")
	for i := 0; i < 4; i++ {
		ana.AddShift(shift.New(monday.AddDays(7*i), shift.At(22, 0), shift.At(6, 0)))
	}

	cached := New(rates.Default(), cal, cache).Consolidated([]*roster.Employee{ana}, nil)
	plain := New(rates.Default(), cal, nil).Consolidated([]*roster.Employee{ana}, nil)
	assert.Equal(t, plain.Hours, cached.Hours)
	assert.True(t, plain.GrossTotal.Equal(cached.GrossTotal))

	hits, misses := cache.Stats()
	assert.Equal(t, 3, hits)
	assert.Equal(t, 1, misses)
}

func TestNewRange(t *testing.T) {
	r, err := NewRange("", "")
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.True(t, r.Contains(monday))

	_, err = NewRange("2025-03-01", "")
	assert.True(t, errors.Is(err, ErrPartialRange))
	_, err = NewRange("", "2025-03-01")
	assert.True(t, errors.Is(err, ErrPartialRange))
	assert.True(t, apperr.IsValidation(err))

	_, err = NewRange("2025-03-10", "2025-03-01")
	assert.True(t, apperr.IsValidation(err))

	_, err = NewRange("2025-13-01", "2025-12-01")
	assert.Error(t, err)

	r, err = NewRange("2025-03-02", "2025-03-03")
	require.NoError(t, err)
	assert.True(t, r.Contains(sunday))
	assert.True(t, r.Contains(monday))
	assert.False(t, r.Contains(monday.AddDays(1)))
	assert.Equal(t, "2025-03-02 to 2025-03-03", r.String())
}

func TestMonth(t *testing.T) {
	r := Month(2024, time.February)
	assert.Equal(t, calendar.NewDate(2024, time.February, 1), r.From)
	assert.Equal(t, calendar.NewDate(2024, time.February, 29), r.To)
}
