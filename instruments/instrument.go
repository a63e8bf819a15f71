package instruments

import (
	"time"

	"github.com/meenmo/rateslib/cashflows"
	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/rates"
)

// Instrument is anything that decomposes into cashflows. Visitors walk
// the cashflow slice and never look past this interface.
type Instrument interface {
	Cashflows() []cashflows.Cashflow
	StartDate() time.Time
	EndDate() time.Time
	Side() cashflows.Side
	Currency() market.Currency
	Notional() float64
}

// common carries the fields every instrument shares.
type common struct {
	cashflows []cashflows.Cashflow
	startDate time.Time
	endDate   time.Time
	side      cashflows.Side
	currency  market.Currency
	notional  float64
	structure Structure
}

func (c *common) Cashflows() []cashflows.Cashflow { return c.cashflows }
func (c *common) StartDate() time.Time            { return c.startDate }
func (c *common) EndDate() time.Time              { return c.endDate }
func (c *common) Side() cashflows.Side            { return c.side }
func (c *common) Currency() market.Currency       { return c.currency }
func (c *common) Notional() float64               { return c.notional }
func (c *common) Structure() Structure            { return c.structure }

// SetDiscountCurveID binds every cashflow to the discount curve id.
func (c *common) SetDiscountCurveID(id int) {
	for _, cf := range c.cashflows {
		cf.SetDiscountCurveID(id)
	}
}

func (c *common) cloneCashflows() []cashflows.Cashflow {
	out := make([]cashflows.Cashflow, len(c.cashflows))
	for i, cf := range c.cashflows {
		out[i] = cf.Clone()
	}
	return out
}

// FixedRateInstrument is a fixed-rate loan or bond profile.
type FixedRateInstrument struct {
	common
	rate rates.InterestRate
}

func (f *FixedRateInstrument) Rate() rates.InterestRate { return f.rate }

// SetRateValue rebinds the instrument rate, preserving its definition, and
// pushes the new value into every fixed coupon.
func (f *FixedRateInstrument) SetRateValue(r float64) {
	f.rate = f.rate.WithRate(r)
	for _, cf := range f.cashflows {
		if coupon, ok := cf.(*cashflows.FixedRateCoupon); ok {
			coupon.SetRateValue(r)
		}
	}
}

// Clone deep-copies the instrument. Ids and curve bindings survive, so the
// copy can be re-priced against market data generated from the original.
func (f *FixedRateInstrument) Clone() *FixedRateInstrument {
	cp := *f
	cp.cashflows = f.cloneCashflows()
	return &cp
}

// FloatingRateInstrument pays an index plus spread.
type FloatingRateInstrument struct {
	common
	spread float64
	def    rates.Definition
}

func (f *FloatingRateInstrument) Spread() float64                { return f.spread }
func (f *FloatingRateInstrument) RateDefinition() rates.Definition { return f.def }

// SetSpreadValue pushes a new spread into every floating coupon.
func (f *FloatingRateInstrument) SetSpreadValue(s float64) {
	f.spread = s
	for _, cf := range f.cashflows {
		if coupon, ok := cf.(*cashflows.FloatingRateCoupon); ok {
			coupon.SetSpread(s)
		}
	}
}

// SetForecastCurveID binds every floating coupon to the forecast curve id.
func (f *FloatingRateInstrument) SetForecastCurveID(id int) {
	setForecastCurveID(f.cashflows, id)
}

func (f *FloatingRateInstrument) Clone() *FloatingRateInstrument {
	cp := *f
	cp.cashflows = f.cloneCashflows()
	return &cp
}

func setForecastCurveID(cfs []cashflows.Cashflow, id int) {
	for _, cf := range cfs {
		if coupon, ok := cf.(*cashflows.FloatingRateCoupon); ok {
			coupon.SetForecastCurveID(id)
		}
	}
}
