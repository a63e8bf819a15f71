// Package curves provides yield term structures: discount factors, forward
// rates derived from discount-factor ratios, and snapshot time-advance.
package curves

import (
	"fmt"
	"time"

	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/utils"
)

// YieldTermStructure supplies discount factors for dates on or after its
// reference date. Implementations must be safe for concurrent readers once
// constructed.
type YieldTermStructure interface {
	ReferenceDate() time.Time

	// DiscountFactor returns the present-value multiplier for a unit
	// cashflow at d. d must not precede the reference date.
	DiscountFactor(d time.Time) (float64, error)

	// ForwardRate returns the rate implied between two future dates,
	// quoted under def.
	ForwardRate(start, end time.Time, def rates.Definition) (float64, error)

	// AdvanceToPeriod returns a new term structure whose reference date is
	// shifted forward by p and whose discount factors are rescaled so that
	// forward rates between future dates are preserved.
	AdvanceToPeriod(p utils.Period) (YieldTermStructure, error)
}

// ForwardRateBetween derives the forward rate between two dates from the
// ratio of discount factors, quoted under def. Implementations of
// YieldTermStructure delegate here.
func ForwardRateBetween(ts YieldTermStructure, start, end time.Time, def rates.Definition) (float64, error) {
	dfStart, err := ts.DiscountFactor(start)
	if err != nil {
		return 0, fmt.Errorf("ForwardRateBetween: %w", err)
	}
	dfEnd, err := ts.DiscountFactor(end)
	if err != nil {
		return 0, fmt.Errorf("ForwardRateBetween: %w", err)
	}
	implied, err := rates.ImpliedRateFromDates(dfStart/dfEnd, def, start, end)
	if err != nil {
		return 0, fmt.Errorf("ForwardRateBetween: %w", err)
	}
	return implied.Rate, nil
}
