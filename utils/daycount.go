package utils

import (
	"time"

	"github.com/meenmo/rateslib/calendar"
)

// DayCountConvention names a day-count basis.
type DayCountConvention string

const (
	Actual360      DayCountConvention = "ACT/360"
	Actual365Fixed DayCountConvention = "ACT/365F"
	Thirty360      DayCountConvention = "30/360"
	ActualActual   DayCountConvention = "ACT/ACT"
	Business252    DayCountConvention = "BUS/252"
)

// DayCounter computes day counts and year fractions under a convention.
// Business252 additionally needs a business-day calendar; the zero value of
// Calendar (NullCalendar semantics do not apply here) should be a real
// market calendar for BUS/252 use.
type DayCounter struct {
	Convention DayCountConvention
	Calendar   calendar.CalendarID
}

// NewDayCounter builds a day counter for a calendar-free convention.
func NewDayCounter(conv DayCountConvention) DayCounter {
	return DayCounter{Convention: conv}
}

// NewBusiness252 builds a BUS/252 day counter on the given calendar.
func NewBusiness252(cal calendar.CalendarID) DayCounter {
	return DayCounter{Convention: Business252, Calendar: cal}
}

// DayCount returns the day count between two dates under the convention.
func (d DayCounter) DayCount(start, end time.Time) float64 {
	switch d.Convention {
	case Thirty360:
		return thirty360Days(start, end)
	case Business252:
		return float64(calendar.BusinessDaysBetween(d.Calendar, start, end))
	default:
		return Days(start, end)
	}
}

// YearFraction returns the accrual fraction between two dates.
func (d DayCounter) YearFraction(start, end time.Time) float64 {
	switch d.Convention {
	case Actual360:
		return Days(start, end) / 360.0
	case Actual365Fixed:
		return Days(start, end) / 365.0
	case Thirty360:
		return thirty360Days(start, end) / 360.0
	case ActualActual:
		return actualActualISDA(start, end)
	case Business252:
		return float64(calendar.BusinessDaysBetween(d.Calendar, start, end)) / 252.0
	default:
		return Days(start, end) / 365.0
	}
}

// thirty360Days applies the 30/360 US end-of-month adjustments:
// D1 = 30 if D1 is 31; D2 = 30 if D2 is 31 and D1 (adjusted) is 30.
func thirty360Days(start, end time.Time) float64 {
	d1 := start.Day()
	d2 := end.Day()
	if d1 == 31 {
		d1 = 30
	}
	if d2 == 31 && d1 == 30 {
		d2 = 30
	}
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return float64(360*(y2-y1) + 30*(m2-m1) + (d2 - d1))
}

// actualActualISDA splits the accrual at year boundaries and weights each
// piece by its own year length (365 or 366).
func actualActualISDA(start, end time.Time) float64 {
	if end.Equal(start) {
		return 0
	}
	if end.Before(start) {
		return -actualActualISDA(end, start)
	}
	if start.Year() == end.Year() {
		return Days(start, end) / yearBasis(start.Year())
	}

	total := 0.0
	firstYearEnd := time.Date(start.Year()+1, 1, 1, 0, 0, 0, 0, time.UTC)
	total += Days(start, firstYearEnd) / yearBasis(start.Year())
	for y := start.Year() + 1; y < end.Year(); y++ {
		total += 1.0
	}
	lastYearStart := time.Date(end.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	total += Days(lastYearStart, end) / yearBasis(end.Year())
	return total
}

func yearBasis(year int) float64 {
	if IsLeapYear(year) {
		return 366.0
	}
	return 365.0
}
