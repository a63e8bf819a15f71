package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeUnit is the unit of a Period.
type TimeUnit int

const (
	UnitDays TimeUnit = iota
	UnitWeeks
	UnitMonths
	UnitYears
)

func (u TimeUnit) String() string {
	switch u {
	case UnitDays:
		return "D"
	case UnitWeeks:
		return "W"
	case UnitMonths:
		return "M"
	case UnitYears:
		return "Y"
	default:
		return "?"
	}
}

// Period is a calendar distance expressed as a length and a unit.
type Period struct {
	Length int
	Unit   TimeUnit
}

func NewPeriod(length int, unit TimeUnit) Period {
	return Period{Length: length, Unit: unit}
}

func (p Period) String() string {
	return fmt.Sprintf("%d%s", p.Length, p.Unit)
}

// IsZero reports whether the period has zero length.
func (p Period) IsZero() bool {
	return p.Length == 0
}

// IsNegative reports whether the period moves backward in time.
func (p Period) IsNegative() bool {
	return p.Length < 0
}

// Add combines two periods. Mixed units are allowed only where the
// conversion is exact (years with months, weeks with days) or where one
// operand has zero length.
func (p Period) Add(o Period) (Period, error) {
	if o.Length == 0 {
		return p, nil
	}
	if p.Length == 0 {
		return o, nil
	}
	if p.Unit == o.Unit {
		return Period{Length: p.Length + o.Length, Unit: p.Unit}, nil
	}

	switch {
	case p.Unit == UnitYears && o.Unit == UnitMonths:
		return Period{Length: 12*p.Length + o.Length, Unit: UnitMonths}, nil
	case p.Unit == UnitMonths && o.Unit == UnitYears:
		return Period{Length: p.Length + 12*o.Length, Unit: UnitMonths}, nil
	case p.Unit == UnitWeeks && o.Unit == UnitDays:
		return Period{Length: 7*p.Length + o.Length, Unit: UnitDays}, nil
	case p.Unit == UnitDays && o.Unit == UnitWeeks:
		return Period{Length: p.Length + 7*o.Length, Unit: UnitDays}, nil
	}
	return Period{}, fmt.Errorf("Period.Add: impossible addition of %s and %s", p, o)
}

// AddPeriod advances a date by a period. Month and year arithmetic uses
// EDATE semantics (see AddMonth) so that month-end dates do not spill over.
func AddPeriod(t time.Time, p Period) time.Time {
	switch p.Unit {
	case UnitDays:
		return t.AddDate(0, 0, p.Length)
	case UnitWeeks:
		return t.AddDate(0, 0, 7*p.Length)
	case UnitMonths:
		return AddMonth(t, p.Length)
	case UnitYears:
		return AddMonth(t, 12*p.Length)
	default:
		return t
	}
}

// ParsePeriod converts tenor strings like "1W", "3M", "10Y", "90D" to a Period.
func ParsePeriod(tenor string) (Period, error) {
	s := strings.TrimSpace(strings.ToUpper(tenor))
	if len(s) < 2 {
		return Period{}, fmt.Errorf("ParsePeriod: invalid tenor %q", tenor)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return Period{}, fmt.Errorf("ParsePeriod: invalid tenor %q", tenor)
	}
	switch s[len(s)-1] {
	case 'D':
		return Period{Length: n, Unit: UnitDays}, nil
	case 'W':
		return Period{Length: n, Unit: UnitWeeks}, nil
	case 'M':
		return Period{Length: n, Unit: UnitMonths}, nil
	case 'Y':
		return Period{Length: n, Unit: UnitYears}, nil
	}
	return Period{}, fmt.Errorf("ParsePeriod: invalid tenor %q", tenor)
}
