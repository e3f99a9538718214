package app

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/recargos/internal/calendar"
	"github.com/recargos/internal/rates"
)

func (s *Service) Holidays() []calendar.Date {
	return s.state.Calendar.Dates()
}

// AddHoliday registers date. Adding a date twice is reported, not an error;
// only a malformed date fails.
func (s *Service) AddHoliday(date string) (Outcome, error) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return Outcome{}, err
	}
	ok, msg := s.state.Calendar.Add(d)
	if !ok {
		return Outcome{Message: msg}, nil
	}

	log.WithField("date", d).Info("holiday added")
	return s.commit(Outcome{Changed: true, Message: msg})
}

func (s *Service) RemoveHoliday(date string) (Outcome, error) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return Outcome{}, err
	}
	ok, msg := s.state.Calendar.Remove(d)
	if !ok {
		return Outcome{Message: msg}, nil
	}

	log.WithField("date", d).Info("holiday removed")
	return s.commit(Outcome{Changed: true, Message: msg})
}

func (s *Service) Rates() rates.Table {
	return s.state.Rates
}

// UpdateRates applies u as one batch. On a validation error the table keeps
// its previous values.
func (s *Service) UpdateRates(u rates.Update) (Outcome, error) {
	next, msgs, err := s.state.Rates.Apply(u)
	if err != nil {
		return Outcome{}, err
	}
	if err := s.saveRates(next); err != nil {
		return Outcome{}, err
	}

	log.WithField("mode", u.Mode()).Info("rates updated")
	return Outcome{Changed: true, Message: strings.Join(msgs, "\n")}, nil
}

// ResetRates restores the statutory table.
func (s *Service) ResetRates() (Outcome, error) {
	if s.state.Rates == rates.Default() {
		return Outcome{Message: "rates already at their defaults"}, nil
	}
	if err := s.saveRates(rates.Default()); err != nil {
		return Outcome{}, err
	}

	log.Info("rates reset")
	return changed("rates reset to defaults"), nil
}

// saveRates stores t and keeps it only if the save succeeds.
func (s *Service) saveRates(t rates.Table) error {
	prev := s.state.Rates
	s.state.Rates = t
	if err := s.save(); err != nil {
		s.state.Rates = prev
		return err
	}
	return nil
}
