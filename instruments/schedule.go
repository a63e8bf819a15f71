// Package instruments materializes deal terms into cashflow sequences:
// schedule generation, redemption profiles, legs, swaps and double-rate
// deals.
package instruments

import (
	"fmt"
	"time"

	"github.com/meenmo/rateslib/calendar"
	"github.com/meenmo/rateslib/cashflows"
	"github.com/meenmo/rateslib/utils"
)

// DateGenerationRule selects the anchor for schedule rolling. Backward
// rolls from the end date (market convention for coupon schedules),
// Forward from the start date.
type DateGenerationRule string

const (
	Backward DateGenerationRule = "BACKWARD"
	Forward  DateGenerationRule = "FORWARD"
)

// NotImplementedError reports an unsupported builder combination.
type NotImplementedError struct {
	What string
}

func (e NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s", e.What)
}

// MakeSchedule builds the sorted anchor dates of a coupon schedule.
// Defaults are NullCalendar, Unadjusted, Backward.
type MakeSchedule struct {
	start           time.Time
	end             time.Time
	tenor           utils.Period
	cal             calendar.CalendarID
	convention      calendar.BusinessDayConvention
	rule            DateGenerationRule
	firstCouponDate time.Time
	endOfMonth      bool
}

// NewMakeSchedule starts a schedule between two dates.
func NewMakeSchedule(start, end time.Time) *MakeSchedule {
	return &MakeSchedule{
		start:      start,
		end:        end,
		cal:        calendar.NullCalendar,
		convention: calendar.Unadjusted,
		rule:       Backward,
	}
}

func (s *MakeSchedule) WithTenor(p utils.Period) *MakeSchedule {
	s.tenor = p
	return s
}

func (s *MakeSchedule) WithFrequency(f utils.Frequency) (*MakeSchedule, error) {
	p, err := f.Period()
	if err != nil {
		return nil, fmt.Errorf("MakeSchedule.WithFrequency: %w", err)
	}
	s.tenor = p
	return s, nil
}

func (s *MakeSchedule) WithCalendar(cal calendar.CalendarID) *MakeSchedule {
	s.cal = cal
	return s
}

func (s *MakeSchedule) WithConvention(conv calendar.BusinessDayConvention) *MakeSchedule {
	s.convention = conv
	return s
}

func (s *MakeSchedule) WithRule(rule DateGenerationRule) *MakeSchedule {
	s.rule = rule
	return s
}

// WithFirstCouponDate inserts an explicit first regular date, creating a
// long first period (grace period) from the start date.
func (s *MakeSchedule) WithFirstCouponDate(d time.Time) *MakeSchedule {
	s.firstCouponDate = d
	return s
}

func (s *MakeSchedule) WithEndOfMonth(eom bool) *MakeSchedule {
	s.endOfMonth = eom
	return s
}

// Build produces the sorted, adjusted anchor dates. A zero tenor produces
// the single period [start, end].
func (s *MakeSchedule) Build() ([]time.Time, error) {
	if s.end.Before(s.start) {
		return nil, fmt.Errorf("MakeSchedule.Build: end %s before start %s",
			s.end.Format("2006-01-02"), s.start.Format("2006-01-02"))
	}
	if !s.firstCouponDate.IsZero() {
		if !s.firstCouponDate.After(s.start) || s.firstCouponDate.After(s.end) {
			return nil, fmt.Errorf("MakeSchedule.Build: first coupon date %s outside (%s, %s]",
				s.firstCouponDate.Format("2006-01-02"), s.start.Format("2006-01-02"), s.end.Format("2006-01-02"))
		}
	}

	if s.tenor.IsZero() {
		return s.adjustAll([]time.Time{s.start, s.end}), nil
	}
	if s.tenor.IsNegative() {
		return nil, fmt.Errorf("MakeSchedule.Build: negative tenor %s", s.tenor)
	}

	// The regular part runs from the first regular date (grace-period
	// aware) to the end date.
	regularStart := s.start
	if !s.firstCouponDate.IsZero() {
		regularStart = s.firstCouponDate
	}

	var dates []time.Time
	switch s.rule {
	case Forward:
		dates = s.rollForward(regularStart)
	default:
		dates = s.rollBackward(regularStart)
	}

	if !s.firstCouponDate.IsZero() && !dates[0].Equal(s.start) {
		dates = append([]time.Time{s.start}, dates...)
	}
	return s.adjustAll(dates), nil
}

// rollBackward generates unadjusted dates from the end date down to the
// regular start, so intermediate dates align with maturity and a short
// first stub absorbs the remainder.
func (s *MakeSchedule) rollBackward(regularStart time.Time) []time.Time {
	var dates []time.Time
	current := s.end
	for current.After(regularStart) {
		dates = append([]time.Time{current}, dates...)
		current = s.rollOnce(current, -1)
	}
	return append([]time.Time{regularStart}, dates...)
}

// rollForward generates unadjusted dates from the regular start up to the
// end date, with a short final stub when the tenor does not divide evenly.
func (s *MakeSchedule) rollForward(regularStart time.Time) []time.Time {
	dates := []time.Time{regularStart}
	current := s.rollOnce(regularStart, 1)
	for current.Before(s.end) {
		dates = append(dates, current)
		current = s.rollOnce(current, 1)
	}
	return append(dates, s.end)
}

func (s *MakeSchedule) rollOnce(t time.Time, direction int) time.Time {
	p := utils.NewPeriod(direction*s.tenor.Length, s.tenor.Unit)
	next := utils.AddPeriod(t, p)
	if s.endOfMonth && utils.IsEndOfMonth(t) {
		next = utils.EndOfMonth(next)
	}
	return next
}

func (s *MakeSchedule) adjustAll(dates []time.Time) []time.Time {
	out := make([]time.Time, len(dates))
	for i, d := range dates {
		out[i] = calendar.Adjust(s.cal, d, s.convention)
	}
	return out
}

// requireField returns a ValueNotSet error naming the missing builder field.
func requireField(ok bool, field string) error {
	if !ok {
		return cashflows.ValueNotSetError{Field: field}
	}
	return nil
}
