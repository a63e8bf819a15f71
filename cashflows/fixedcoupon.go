package cashflows

import (
	"time"

	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/rates"
)

// FixedRateCoupon accrues a fixed rate over [accrualStart, accrualEnd] and
// pays on paymentDate. The amount is derived, never stored:
// notional * (compoundFactor(accrualStart, accrualEnd) - 1).
type FixedRateCoupon struct {
	base
	notional     float64
	rate         rates.InterestRate
	accrualStart time.Time
	accrualEnd   time.Time
}

// NewFixedRateCoupon builds a fixed coupon.
func NewFixedRateCoupon(notional float64, rate rates.InterestRate, accrualStart, accrualEnd, paymentDate time.Time, currency market.Currency, side Side) *FixedRateCoupon {
	c := &FixedRateCoupon{
		notional:     notional,
		rate:         rate,
		accrualStart: accrualStart,
		accrualEnd:   accrualEnd,
	}
	c.currency = currency
	c.side = side
	c.paymentDate = paymentDate
	return c
}

func (c *FixedRateCoupon) Type() Type              { return TypeFixedRateCoupon }
func (c *FixedRateCoupon) Notional() float64       { return c.notional }
func (c *FixedRateCoupon) AccrualStart() time.Time { return c.accrualStart }
func (c *FixedRateCoupon) AccrualEnd() time.Time   { return c.accrualEnd }
func (c *FixedRateCoupon) Rate() rates.InterestRate { return c.rate }

// SetRateValue rebinds the rate value, preserving its definition. The par
// solver leans on this to re-evaluate an instrument in place.
func (c *FixedRateCoupon) SetRateValue(r float64) {
	c.rate = c.rate.WithRate(r)
}

func (c *FixedRateCoupon) Amount() (float64, error) {
	return c.notional * (c.rate.CompoundFactor(c.accrualStart, c.accrualEnd) - 1.0), nil
}

// AccruedAmount restricts the accrual to the intersection of [d1, d2] with
// the coupon's window; disjoint windows accrue nothing.
func (c *FixedRateCoupon) AccruedAmount(d1, d2 time.Time) (float64, error) {
	start, end, ok := clipAccrual(d1, d2, c.accrualStart, c.accrualEnd)
	if !ok {
		return 0, nil
	}
	return c.notional * (c.rate.CompoundFactor(start, end) - 1.0), nil
}

func (c *FixedRateCoupon) MarketRequest() (market.Request, error) {
	return c.baseRequest()
}

func (c *FixedRateCoupon) Clone() Cashflow {
	cp := *c
	return &cp
}

// clipAccrual intersects the query window with the accrual window.
func clipAccrual(d1, d2, accrualStart, accrualEnd time.Time) (time.Time, time.Time, bool) {
	start := d1
	if accrualStart.After(start) {
		start = accrualStart
	}
	end := d2
	if accrualEnd.Before(end) {
		end = accrualEnd
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
