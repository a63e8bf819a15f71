package instruments

import (
	"fmt"
	"time"

	"github.com/meenmo/rateslib/calendar"
	"github.com/meenmo/rateslib/cashflows"
	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/utils"
)

// Swap is two legs priced together. Its side and currency are those of
// the first leg; the notional is the first leg's notional.
type Swap struct {
	common
	firstLeg  *Leg
	secondLeg *Leg
}

func (s *Swap) FirstLeg() *Leg  { return s.firstLeg }
func (s *Swap) SecondLeg() *Leg { return s.secondLeg }

// MakeSwap combines two already built legs.
func MakeSwap(first, second *Leg) (*Swap, error) {
	if first == nil || second == nil {
		return nil, cashflows.ValueNotSetError{Field: "leg"}
	}
	s := &Swap{firstLeg: first, secondLeg: second}
	s.cashflows = append(append([]cashflows.Cashflow{}, first.cashflows...), second.cashflows...)
	s.startDate = first.startDate
	if second.startDate.Before(s.startDate) {
		s.startDate = second.startDate
	}
	s.endDate = first.endDate
	if second.endDate.After(s.endDate) {
		s.endDate = second.endDate
	}
	s.side = first.side
	s.currency = first.currency
	s.notional = first.notional
	return s, nil
}

// MakeFixFloatSwap builds a plain vanilla swap: a fixed leg on the given
// side against a floating leg on the opposite side, same notional and
// currency, no notional exchange.
type MakeFixFloatSwap struct {
	startDate       time.Time
	endDate         time.Time
	fixedRate       rates.InterestRate
	hasRate         bool
	fixedFrequency  utils.Frequency
	floatDef        rates.Definition
	hasDef          bool
	spread          float64
	notional        float64
	currency        market.Currency
	side            cashflows.Side
	cal             calendar.CalendarID
	convention      calendar.BusinessDayConvention
	discountCurveID int
	hasDiscount     bool
	forecastCurveID int
	hasForecast     bool
}

func NewMakeFixFloatSwap() *MakeFixFloatSwap {
	return &MakeFixFloatSwap{
		fixedFrequency: utils.NoFrequency,
		side:           cashflows.Receive,
		cal:            calendar.NullCalendar,
		convention:     calendar.Unadjusted,
	}
}

func (b *MakeFixFloatSwap) WithStartDate(d time.Time) *MakeFixFloatSwap {
	b.startDate = d
	return b
}

func (b *MakeFixFloatSwap) WithEndDate(d time.Time) *MakeFixFloatSwap {
	b.endDate = d
	return b
}

func (b *MakeFixFloatSwap) WithFixedRate(r rates.InterestRate) *MakeFixFloatSwap {
	b.fixedRate = r
	b.hasRate = true
	return b
}

func (b *MakeFixFloatSwap) WithFixedFrequency(f utils.Frequency) *MakeFixFloatSwap {
	b.fixedFrequency = f
	return b
}

func (b *MakeFixFloatSwap) WithFloatDefinition(def rates.Definition) *MakeFixFloatSwap {
	b.floatDef = def
	b.hasDef = true
	return b
}

func (b *MakeFixFloatSwap) WithSpread(s float64) *MakeFixFloatSwap {
	b.spread = s
	return b
}

func (b *MakeFixFloatSwap) WithNotional(n float64) *MakeFixFloatSwap {
	b.notional = n
	return b
}

func (b *MakeFixFloatSwap) WithCurrency(c market.Currency) *MakeFixFloatSwap {
	b.currency = c
	return b
}

// WithSide sets the fixed leg's side; the floating leg takes the inverse.
func (b *MakeFixFloatSwap) WithSide(s cashflows.Side) *MakeFixFloatSwap {
	b.side = s
	return b
}

func (b *MakeFixFloatSwap) WithCalendar(cal calendar.CalendarID) *MakeFixFloatSwap {
	b.cal = cal
	return b
}

func (b *MakeFixFloatSwap) WithConvention(conv calendar.BusinessDayConvention) *MakeFixFloatSwap {
	b.convention = conv
	return b
}

func (b *MakeFixFloatSwap) WithDiscountCurveID(id int) *MakeFixFloatSwap {
	b.discountCurveID = id
	b.hasDiscount = true
	return b
}

func (b *MakeFixFloatSwap) WithForecastCurveID(id int) *MakeFixFloatSwap {
	b.forecastCurveID = id
	b.hasForecast = true
	return b
}

func (b *MakeFixFloatSwap) Build() (*Swap, error) {
	if !b.hasRate {
		return nil, cashflows.ValueNotSetError{Field: "fixedRate"}
	}
	if !b.hasDef {
		return nil, cashflows.ValueNotSetError{Field: "floatDefinition"}
	}
	fixedFreq := b.fixedFrequency
	if fixedFreq == utils.NoFrequency {
		fixedFreq = b.fixedRate.Def.Frequency
	}

	fixedLeg := NewMakeFixedRateLeg().
		WithStartDate(b.startDate).
		WithEndDate(b.endDate).
		WithFrequency(fixedFreq).
		WithRate(b.fixedRate).
		WithNotional(b.notional).
		WithCurrency(b.currency).
		WithSide(b.side).
		WithCalendar(b.cal).
		WithConvention(b.convention)
	if b.hasDiscount {
		fixedLeg.WithDiscountCurveID(b.discountCurveID)
	}

	floatLeg := NewMakeFloatingRateLeg().
		WithStartDate(b.startDate).
		WithEndDate(b.endDate).
		WithSpread(b.spread).
		WithRateDefinition(b.floatDef).
		WithNotional(b.notional).
		WithCurrency(b.currency).
		WithSide(b.side.Inverse()).
		WithCalendar(b.cal).
		WithConvention(b.convention)
	if b.hasDiscount {
		floatLeg.WithDiscountCurveID(b.discountCurveID)
	}
	if b.hasForecast {
		floatLeg.WithForecastCurveID(b.forecastCurveID)
	}

	first, err := fixedLeg.Build()
	if err != nil {
		return nil, fmt.Errorf("MakeFixFloatSwap.Build: %w", err)
	}
	second, err := floatLeg.Build()
	if err != nil {
		return nil, fmt.Errorf("MakeFixFloatSwap.Build: %w", err)
	}
	return MakeSwap(first, second)
}
