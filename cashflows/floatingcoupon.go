package cashflows

import (
	"time"

	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/rates"
)

// FloatingRateCoupon accrues index + spread over [accrualStart,
// accrualEnd]. It has three states: before fixing the amount is undefined;
// SetFixingRate snapshots an InterestRate of (fixing + spread) under the
// coupon's rate definition; thereafter it behaves like a fixed coupon.
type FloatingRateCoupon struct {
	base
	notional     float64
	spread       float64
	accrualStart time.Time
	accrualEnd   time.Time
	fixingDate   time.Time
	def          rates.Definition

	forecastCurveID int
	hasForecast     bool

	fixingRate float64
	fixed      bool
	rate       rates.InterestRate
}

// NewFloatingRateCoupon builds an unfixed floating coupon. The fixing date
// defaults to the accrual start; override with SetFixingDate.
func NewFloatingRateCoupon(notional, spread float64, accrualStart, accrualEnd, paymentDate time.Time, def rates.Definition, currency market.Currency, side Side) *FloatingRateCoupon {
	c := &FloatingRateCoupon{
		notional:     notional,
		spread:       spread,
		accrualStart: accrualStart,
		accrualEnd:   accrualEnd,
		fixingDate:   accrualStart,
		def:          def,
	}
	c.currency = currency
	c.side = side
	c.paymentDate = paymentDate
	return c
}

func (c *FloatingRateCoupon) Type() Type               { return TypeFloatingRateCoupon }
func (c *FloatingRateCoupon) Notional() float64        { return c.notional }
func (c *FloatingRateCoupon) Spread() float64          { return c.spread }
func (c *FloatingRateCoupon) AccrualStart() time.Time  { return c.accrualStart }
func (c *FloatingRateCoupon) AccrualEnd() time.Time    { return c.accrualEnd }
func (c *FloatingRateCoupon) FixingDate() time.Time    { return c.fixingDate }
func (c *FloatingRateCoupon) RateDefinition() rates.Definition { return c.def }

func (c *FloatingRateCoupon) SetFixingDate(d time.Time) {
	c.fixingDate = d
}

func (c *FloatingRateCoupon) ForecastCurveID() (int, error) {
	if !c.hasForecast {
		return 0, market.ErrNoForecastCurveID
	}
	return c.forecastCurveID, nil
}

func (c *FloatingRateCoupon) SetForecastCurveID(id int) {
	c.forecastCurveID = id
	c.hasForecast = true
}

// FixingRate returns the realized fixing once set.
func (c *FloatingRateCoupon) FixingRate() (float64, error) {
	if !c.fixed {
		return 0, ValueNotSetError{Field: "fixingRate"}
	}
	return c.fixingRate, nil
}

// SetSpread rebinds the spread. An already fixed coupon keeps its fixing
// and re-snapshots the all-in rate.
func (c *FloatingRateCoupon) SetSpread(spread float64) {
	c.spread = spread
	if c.fixed {
		c.rate = rates.New(c.fixingRate+spread, c.def)
	}
}

// SetFixingRate snapshots the coupon's all-in rate at fixing + spread.
func (c *FloatingRateCoupon) SetFixingRate(fixing float64) {
	c.fixingRate = fixing
	c.rate = rates.New(fixing+c.spread, c.def)
	c.fixed = true
}

func (c *FloatingRateCoupon) Amount() (float64, error) {
	if !c.fixed {
		return 0, ValueNotSetError{Field: "fixingRate"}
	}
	return c.notional * (c.rate.CompoundFactor(c.accrualStart, c.accrualEnd) - 1.0), nil
}

// AccruedAmount subtracts the compound factor up to the window start from
// the one up to the window end, both anchored at the accrual start. Under
// Simple compounding this reduces to notional * r * yf(d1', d2').
func (c *FloatingRateCoupon) AccruedAmount(d1, d2 time.Time) (float64, error) {
	if !c.fixed {
		return 0, ValueNotSetError{Field: "fixingRate"}
	}
	if !d2.After(c.accrualStart) || !c.accrualEnd.After(d1) {
		return 0, nil
	}
	end := d2
	if c.accrualEnd.Before(end) {
		end = c.accrualEnd
	}
	windowStart := d1
	if c.accrualStart.After(windowStart) {
		windowStart = c.accrualStart
	}
	upToEnd := c.rate.CompoundFactor(c.accrualStart, end)
	upToStart := c.rate.CompoundFactor(c.accrualStart, windowStart)
	return c.notional * (upToEnd - upToStart), nil
}

// MarketRequest adds the forward-rate leg to the base discount and fx legs.
func (c *FloatingRateCoupon) MarketRequest() (market.Request, error) {
	req, err := c.baseRequest()
	if err != nil {
		return market.Request{}, err
	}
	if !c.hasForecast {
		return market.Request{}, market.ErrNoForecastCurveID
	}
	req.Forward = &market.ForwardRateRequest{
		CurveID:    c.forecastCurveID,
		FixingDate: c.fixingDate,
		StartDate:  c.accrualStart,
		EndDate:    c.accrualEnd,
		Def:        c.def,
	}
	return req, nil
}

func (c *FloatingRateCoupon) Clone() Cashflow {
	cp := *c
	return &cp
}
