// Package rates implements interest-rate algebra: compounding conventions,
// compound/discount factor composition and implied-rate inversion.
package rates

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/meenmo/rateslib/utils"
)

// Compounding enumerates rate compounding conventions. The two mixed
// variants switch between simple and compounded accrual at t = 1/f.
type Compounding int

const (
	Simple Compounding = iota
	Compounded
	Continuous
	SimpleThenCompounded
	CompoundedThenSimple
)

func (c Compounding) String() string {
	switch c {
	case Simple:
		return "Simple"
	case Compounded:
		return "Compounded"
	case Continuous:
		return "Continuous"
	case SimpleThenCompounded:
		return "SimpleThenCompounded"
	case CompoundedThenSimple:
		return "CompoundedThenSimple"
	default:
		return "Unknown"
	}
}

var (
	// ErrPositiveCompoundFactor is returned when an implied rate is requested
	// from a non-positive compound factor.
	ErrPositiveCompoundFactor = errors.New("compound factor must be positive")
	// ErrPositiveTime is returned when an implied rate is requested over a
	// non-positive year fraction.
	ErrPositiveTime = errors.New("time must be positive")
	// ErrNonNegativeTime is returned for negative year fractions.
	ErrNonNegativeTime = errors.New("time must be non-negative")
)

// Definition bundles the conventions under which a rate value is quoted.
type Definition struct {
	DayCounter  utils.DayCounter
	Compounding Compounding
	Frequency   utils.Frequency
}

// NewDefinition builds a rate definition.
func NewDefinition(dc utils.DayCounter, comp Compounding, freq utils.Frequency) Definition {
	return Definition{DayCounter: dc, Compounding: comp, Frequency: freq}
}

// DefaultDefinition is ACT/360, Compounded, Annual: the library-wide quoting
// default for curves and coupons when a builder does not override it.
func DefaultDefinition() Definition {
	return Definition{
		DayCounter:  utils.NewDayCounter(utils.Actual360),
		Compounding: Compounded,
		Frequency:   utils.Annual,
	}
}

// InterestRate is a rate value together with its quoting definition.
type InterestRate struct {
	Rate float64
	Def  Definition
}

// New builds an interest rate.
func New(rate float64, def Definition) InterestRate {
	return InterestRate{Rate: rate, Def: def}
}

// WithRate returns a copy with a new rate value and the same definition.
func (r InterestRate) WithRate(v float64) InterestRate {
	r.Rate = v
	return r
}

// CompoundFactorFromYF returns the growth factor of a unit investment over
// year fraction t. It is 1 at t = 0 and strictly increasing in t for r > 0.
func (r InterestRate) CompoundFactorFromYF(t float64) float64 {
	f := r.Def.Frequency.PerYear()
	switch r.Def.Compounding {
	case Simple:
		return 1.0 + r.Rate*t
	case Compounded:
		return math.Pow(1.0+r.Rate/f, f*t)
	case Continuous:
		return math.Exp(r.Rate * t)
	case SimpleThenCompounded:
		if t <= 1.0/f {
			return 1.0 + r.Rate*t
		}
		return math.Pow(1.0+r.Rate/f, f*t)
	case CompoundedThenSimple:
		if t <= 1.0/f {
			return math.Pow(1.0+r.Rate/f, f*t)
		}
		return 1.0 + r.Rate*t
	default:
		return 1.0 + r.Rate*t
	}
}

// CompoundFactor returns the growth factor between two dates under the
// rate's own day counter.
func (r InterestRate) CompoundFactor(start, end time.Time) float64 {
	return r.CompoundFactorFromYF(r.Def.DayCounter.YearFraction(start, end))
}

// DiscountFactorFromYF is the reciprocal of CompoundFactorFromYF.
func (r InterestRate) DiscountFactorFromYF(t float64) float64 {
	return 1.0 / r.CompoundFactorFromYF(t)
}

// DiscountFactor returns the present-value multiplier between two dates.
func (r InterestRate) DiscountFactor(start, end time.Time) float64 {
	return 1.0 / r.CompoundFactor(start, end)
}

// ImpliedRate inverts a compound factor over year fraction t into a rate
// quoted under def. A unit compound factor implies a zero rate for any
// t >= 0; otherwise t must be strictly positive.
func ImpliedRate(compound float64, def Definition, t float64) (InterestRate, error) {
	if compound <= 0.0 {
		return InterestRate{}, fmt.Errorf("ImpliedRate: %w (got %v)", ErrPositiveCompoundFactor, compound)
	}

	if compound == 1.0 {
		if t < 0.0 {
			return InterestRate{}, fmt.Errorf("ImpliedRate: %w (got %v)", ErrNonNegativeTime, t)
		}
		return New(0.0, def), nil
	}

	if t <= 0.0 {
		return InterestRate{}, fmt.Errorf("ImpliedRate: %w (got %v)", ErrPositiveTime, t)
	}

	f := def.Frequency.PerYear()
	var rate float64
	switch def.Compounding {
	case Simple:
		rate = (compound - 1.0) / t
	case Compounded:
		rate = (math.Pow(compound, 1.0/(f*t)) - 1.0) * f
	case Continuous:
		rate = math.Log(compound) / t
	case SimpleThenCompounded:
		if t <= 1.0/f {
			rate = (compound - 1.0) / t
		} else {
			rate = (math.Pow(compound, 1.0/(f*t)) - 1.0) * f
		}
	case CompoundedThenSimple:
		if t <= 1.0/f {
			rate = (math.Pow(compound, 1.0/(f*t)) - 1.0) * f
		} else {
			rate = (compound - 1.0) / t
		}
	default:
		rate = (compound - 1.0) / t
	}
	return New(rate, def), nil
}

// ImpliedRateFromDates inverts a compound factor observed between two dates.
func ImpliedRateFromDates(compound float64, def Definition, start, end time.Time) (InterestRate, error) {
	return ImpliedRate(compound, def, def.DayCounter.YearFraction(start, end))
}
