// Package calendar provides business-day calendars and date-roll conventions.
//
// Calendars are identified by CalendarID. NullCalendar treats every day as a
// business day and is the default for schedule generation; WeekendsOnly knows
// no holidays beyond Saturday and Sunday. The named calendars carry static
// holiday tables.
package calendar

import "time"

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	NullCalendar CalendarID = "NULL"
	WeekendsOnly CalendarID = "WEEKENDS"
	TARGET       CalendarID = "TARGET"
	NYC          CalendarID = "NYC"
	TYO          CalendarID = "TYO"
	SEL          CalendarID = "SEL"
)

// BusinessDayConvention selects how a non-business date is rolled.
type BusinessDayConvention string

const (
	Unadjusted        BusinessDayConvention = "UNADJUSTED"
	Following         BusinessDayConvention = "FOLLOWING"
	ModifiedFollowing BusinessDayConvention = "MODIFIED_FOLLOWING"
	Preceding         BusinessDayConvention = "PRECEDING"
)

var holidayTables = map[CalendarID]map[string]struct{}{}

func init() {
	for id, list := range holidayLists {
		table := make(map[string]struct{}, len(list))
		for _, h := range list {
			table[h] = struct{}{}
		}
		holidayTables[id] = table
	}
}

// AddHoliday registers an extra holiday on a named calendar. It is meant for
// single-threaded setup before any pricing pass starts.
func AddHoliday(cal CalendarID, t time.Time) {
	table, ok := holidayTables[cal]
	if !ok {
		table = map[string]struct{}{}
		holidayTables[cal] = table
	}
	table[t.Format("2006-01-02")] = struct{}{}
}

func isHoliday(cal CalendarID, t time.Time) bool {
	table, ok := holidayTables[cal]
	if !ok {
		return false
	}
	_, found := table[t.Format("2006-01-02")]
	return found
}

// IsBusinessDay checks weekends and the calendar's holiday table.
// NullCalendar treats every day, weekends included, as a business day.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if cal == NullCalendar {
		return true
	}
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust rolls t to a business day per the given convention.
func Adjust(cal CalendarID, t time.Time, conv BusinessDayConvention) time.Time {
	switch conv {
	case Unadjusted:
		return t
	case Following:
		return adjustFollowing(cal, t)
	case Preceding:
		return adjustPreceding(cal, t)
	case ModifiedFollowing:
		origMonth := t.Month()
		adj := adjustFollowing(cal, t)
		if adj.Month() != origMonth {
			return adjustPreceding(cal, t)
		}
		return adj
	default:
		return adjustFollowing(cal, t)
	}
}

func adjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func adjustPreceding(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

// BusinessDaysBetween counts business days in [start, end).
func BusinessDaysBetween(cal CalendarID, start, end time.Time) int {
	if end.Before(start) {
		return -BusinessDaysBetween(cal, end, start)
	}
	n := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(cal, d) {
			n++
		}
	}
	return n
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal CalendarID, t time.Time) time.Time {
	nextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return AddBusinessDays(cal, nextMonth, -1)
}

// IsEndOfMonth checks if t is the last business day of its month.
func IsEndOfMonth(cal CalendarID, t time.Time) bool {
	return t.Equal(LastBusinessDayOfMonth(cal, t))
}
