package utils

import "fmt"

// Frequency enumerates payment/compounding frequencies. The numeric value
// is the number of events per year (QuantLib convention), with sentinel
// values for the degenerate cases.
type Frequency int

const (
	NoFrequency     Frequency = -1
	Once            Frequency = 0
	Annual          Frequency = 1
	Semiannual      Frequency = 2
	EveryFourthMonth Frequency = 3
	Quarterly       Frequency = 4
	Bimonthly       Frequency = 6
	Monthly         Frequency = 12
	EveryFourthWeek Frequency = 13
	Biweekly        Frequency = 26
	Weekly          Frequency = 52
	Daily           Frequency = 365
	OtherFrequency  Frequency = 999
)

func (f Frequency) String() string {
	switch f {
	case NoFrequency:
		return "NoFrequency"
	case Once:
		return "Once"
	case Annual:
		return "Annual"
	case Semiannual:
		return "Semiannual"
	case EveryFourthMonth:
		return "EveryFourthMonth"
	case Quarterly:
		return "Quarterly"
	case Bimonthly:
		return "Bimonthly"
	case Monthly:
		return "Monthly"
	case EveryFourthWeek:
		return "EveryFourthWeek"
	case Biweekly:
		return "Biweekly"
	case Weekly:
		return "Weekly"
	case Daily:
		return "Daily"
	default:
		return "OtherFrequency"
	}
}

// PerYear returns the number of events per year as a float, for use as the
// compounding frequency f in rate conversions.
func (f Frequency) PerYear() float64 {
	return float64(f)
}

// Period converts a canonical frequency to its tenor.
func (f Frequency) Period() (Period, error) {
	switch f {
	case NoFrequency, Once:
		return Period{Length: 0, Unit: UnitYears}, nil
	case Annual:
		return Period{Length: 1, Unit: UnitYears}, nil
	case Semiannual:
		return Period{Length: 6, Unit: UnitMonths}, nil
	case EveryFourthMonth:
		return Period{Length: 4, Unit: UnitMonths}, nil
	case Quarterly:
		return Period{Length: 3, Unit: UnitMonths}, nil
	case Bimonthly:
		return Period{Length: 2, Unit: UnitMonths}, nil
	case Monthly:
		return Period{Length: 1, Unit: UnitMonths}, nil
	case EveryFourthWeek:
		return Period{Length: 4, Unit: UnitWeeks}, nil
	case Biweekly:
		return Period{Length: 2, Unit: UnitWeeks}, nil
	case Weekly:
		return Period{Length: 1, Unit: UnitWeeks}, nil
	case Daily:
		return Period{Length: 1, Unit: UnitDays}, nil
	}
	return Period{}, fmt.Errorf("Frequency.Period: no tenor for %s", f)
}

// FrequencyFromPeriod converts a tenor to a canonical frequency, returning
// OtherFrequency for tenors outside the canonical set.
func FrequencyFromPeriod(p Period) Frequency {
	switch p.Unit {
	case UnitYears:
		if p.Length == 0 {
			return Once
		}
		if p.Length == 1 {
			return Annual
		}
	case UnitMonths:
		if p.Length > 0 && 12%p.Length == 0 {
			return Frequency(12 / p.Length)
		}
	case UnitWeeks:
		switch p.Length {
		case 1:
			return Weekly
		case 2:
			return Biweekly
		case 4:
			return EveryFourthWeek
		}
	case UnitDays:
		if p.Length == 1 {
			return Daily
		}
	}
	return OtherFrequency
}
