package curves

import (
	"fmt"
	"time"

	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/utils"
)

// FlatForwardCurve discounts every horizon at a single quoted rate. It is
// the workhorse for scenario curves and test setups.
type FlatForwardCurve struct {
	refDate time.Time
	rate    rates.InterestRate
}

// NewFlatForwardCurve builds a flat curve at the given rate.
func NewFlatForwardCurve(refDate time.Time, rate rates.InterestRate) *FlatForwardCurve {
	return &FlatForwardCurve{refDate: refDate, rate: rate}
}

// Rate returns the quoted flat rate.
func (c *FlatForwardCurve) Rate() rates.InterestRate {
	return c.rate
}

func (c *FlatForwardCurve) ReferenceDate() time.Time {
	return c.refDate
}

func (c *FlatForwardCurve) DiscountFactor(d time.Time) (float64, error) {
	if d.Before(c.refDate) {
		return 0, fmt.Errorf("FlatForwardCurve.DiscountFactor: date %s precedes reference date %s",
			d.Format("2006-01-02"), c.refDate.Format("2006-01-02"))
	}
	return c.rate.DiscountFactor(c.refDate, d), nil
}

func (c *FlatForwardCurve) ForwardRate(start, end time.Time, def rates.Definition) (float64, error) {
	return ForwardRateBetween(c, start, end, def)
}

// AdvanceToPeriod shifts the reference date; a flat curve is invariant
// under the roll apart from its anchor.
func (c *FlatForwardCurve) AdvanceToPeriod(p utils.Period) (YieldTermStructure, error) {
	if p.IsNegative() {
		return nil, fmt.Errorf("FlatForwardCurve.AdvanceToPeriod: negative period %s", p)
	}
	return &FlatForwardCurve{refDate: utils.AddPeriod(c.refDate, p), rate: c.rate}, nil
}
