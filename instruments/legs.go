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

// Leg is one side of a swap: a coupon stream, optionally with the
// notional exchanged at both ends.
type Leg struct {
	cashflows []cashflows.Cashflow
	startDate time.Time
	endDate   time.Time
	side      cashflows.Side
	currency  market.Currency
	notional  float64
}

func (l *Leg) Cashflows() []cashflows.Cashflow { return l.cashflows }
func (l *Leg) StartDate() time.Time            { return l.startDate }
func (l *Leg) EndDate() time.Time              { return l.endDate }
func (l *Leg) Side() cashflows.Side            { return l.side }
func (l *Leg) Currency() market.Currency       { return l.currency }
func (l *Leg) Notional() float64               { return l.notional }

// legSchedule is the schedule configuration shared by both leg builders.
type legSchedule struct {
	startDate  time.Time
	endDate    time.Time
	cal        calendar.CalendarID
	convention calendar.BusinessDayConvention
	rule       DateGenerationRule
}

func (s *legSchedule) build(freq utils.Frequency) ([]time.Time, error) {
	if s.startDate.IsZero() {
		return nil, cashflows.ValueNotSetError{Field: "startDate"}
	}
	if s.endDate.IsZero() {
		return nil, cashflows.ValueNotSetError{Field: "endDate"}
	}
	if freq == utils.NoFrequency || freq == utils.Once {
		return nil, cashflows.ValueNotSetError{Field: "frequency"}
	}
	m, err := NewMakeSchedule(s.startDate, s.endDate).
		WithCalendar(s.cal).
		WithConvention(s.convention).
		WithRule(s.rule).
		WithFrequency(freq)
	if err != nil {
		return nil, err
	}
	return m.Build()
}

// MakeFixedRateLeg builds a bullet fixed coupon stream.
type MakeFixedRateLeg struct {
	legSchedule
	frequency        utils.Frequency
	rate             rates.InterestRate
	hasRate          bool
	notional         float64
	currency         market.Currency
	side             cashflows.Side
	notionalExchange bool
	discountCurveID  int
	hasDiscount      bool
}

func NewMakeFixedRateLeg() *MakeFixedRateLeg {
	leg := &MakeFixedRateLeg{frequency: utils.NoFrequency, side: cashflows.Receive}
	leg.cal = calendar.NullCalendar
	leg.convention = calendar.Unadjusted
	leg.rule = Backward
	return leg
}

func (b *MakeFixedRateLeg) WithStartDate(d time.Time) *MakeFixedRateLeg {
	b.startDate = d
	return b
}

func (b *MakeFixedRateLeg) WithEndDate(d time.Time) *MakeFixedRateLeg {
	b.endDate = d
	return b
}

func (b *MakeFixedRateLeg) WithFrequency(f utils.Frequency) *MakeFixedRateLeg {
	b.frequency = f
	return b
}

func (b *MakeFixedRateLeg) WithRate(r rates.InterestRate) *MakeFixedRateLeg {
	b.rate = r
	b.hasRate = true
	return b
}

func (b *MakeFixedRateLeg) WithNotional(n float64) *MakeFixedRateLeg {
	b.notional = n
	return b
}

func (b *MakeFixedRateLeg) WithCurrency(c market.Currency) *MakeFixedRateLeg {
	b.currency = c
	return b
}

func (b *MakeFixedRateLeg) WithSide(s cashflows.Side) *MakeFixedRateLeg {
	b.side = s
	return b
}

func (b *MakeFixedRateLeg) WithCalendar(cal calendar.CalendarID) *MakeFixedRateLeg {
	b.cal = cal
	return b
}

func (b *MakeFixedRateLeg) WithConvention(conv calendar.BusinessDayConvention) *MakeFixedRateLeg {
	b.convention = conv
	return b
}

// WithNotionalExchange adds a disbursement at the start and a redemption
// at maturity, as cross-currency legs need.
func (b *MakeFixedRateLeg) WithNotionalExchange(on bool) *MakeFixedRateLeg {
	b.notionalExchange = on
	return b
}

func (b *MakeFixedRateLeg) WithDiscountCurveID(id int) *MakeFixedRateLeg {
	b.discountCurveID = id
	b.hasDiscount = true
	return b
}

func (b *MakeFixedRateLeg) Build() (*Leg, error) {
	if !b.hasRate {
		return nil, cashflows.ValueNotSetError{Field: "rate"}
	}
	if b.currency == market.NoCurrency {
		return nil, cashflows.ValueNotSetError{Field: "currency"}
	}
	if b.notional <= 0 {
		return nil, cashflows.ValueNotSetError{Field: "notional"}
	}
	schedule, err := b.build(b.frequency)
	if err != nil {
		return nil, fmt.Errorf("MakeFixedRateLeg.Build: %w", err)
	}

	var cfs []cashflows.Cashflow
	if b.notionalExchange {
		cfs = append(cfs, cashflows.NewDisbursement(b.notional, schedule[0], b.currency, b.side.Inverse()))
	}
	for i := 0; i < len(schedule)-1; i++ {
		cfs = append(cfs, cashflows.NewFixedRateCoupon(
			b.notional, b.rate, schedule[i], schedule[i+1], schedule[i+1], b.currency, b.side))
	}
	if b.notionalExchange {
		cfs = append(cfs, cashflows.NewRedemption(b.notional, schedule[len(schedule)-1], b.currency, b.side))
	}
	if b.hasDiscount {
		for _, cf := range cfs {
			cf.SetDiscountCurveID(b.discountCurveID)
		}
	}
	return &Leg{
		cashflows: cfs,
		startDate: schedule[0],
		endDate:   schedule[len(schedule)-1],
		side:      b.side,
		currency:  b.currency,
		notional:  b.notional,
	}, nil
}

// MakeFloatingRateLeg builds a bullet floating coupon stream.
type MakeFloatingRateLeg struct {
	legSchedule
	spread           float64
	def              rates.Definition
	hasDef           bool
	notional         float64
	currency         market.Currency
	side             cashflows.Side
	notionalExchange bool
	discountCurveID  int
	hasDiscount      bool
	forecastCurveID  int
	hasForecast      bool
}

func NewMakeFloatingRateLeg() *MakeFloatingRateLeg {
	leg := &MakeFloatingRateLeg{side: cashflows.Receive}
	leg.cal = calendar.NullCalendar
	leg.convention = calendar.Unadjusted
	leg.rule = Backward
	return leg
}

func (b *MakeFloatingRateLeg) WithStartDate(d time.Time) *MakeFloatingRateLeg {
	b.startDate = d
	return b
}

func (b *MakeFloatingRateLeg) WithEndDate(d time.Time) *MakeFloatingRateLeg {
	b.endDate = d
	return b
}

func (b *MakeFloatingRateLeg) WithSpread(s float64) *MakeFloatingRateLeg {
	b.spread = s
	return b
}

func (b *MakeFloatingRateLeg) WithRateDefinition(def rates.Definition) *MakeFloatingRateLeg {
	b.def = def
	b.hasDef = true
	return b
}

func (b *MakeFloatingRateLeg) WithNotional(n float64) *MakeFloatingRateLeg {
	b.notional = n
	return b
}

func (b *MakeFloatingRateLeg) WithCurrency(c market.Currency) *MakeFloatingRateLeg {
	b.currency = c
	return b
}

func (b *MakeFloatingRateLeg) WithSide(s cashflows.Side) *MakeFloatingRateLeg {
	b.side = s
	return b
}

func (b *MakeFloatingRateLeg) WithCalendar(cal calendar.CalendarID) *MakeFloatingRateLeg {
	b.cal = cal
	return b
}

func (b *MakeFloatingRateLeg) WithConvention(conv calendar.BusinessDayConvention) *MakeFloatingRateLeg {
	b.convention = conv
	return b
}

func (b *MakeFloatingRateLeg) WithNotionalExchange(on bool) *MakeFloatingRateLeg {
	b.notionalExchange = on
	return b
}

func (b *MakeFloatingRateLeg) WithDiscountCurveID(id int) *MakeFloatingRateLeg {
	b.discountCurveID = id
	b.hasDiscount = true
	return b
}

func (b *MakeFloatingRateLeg) WithForecastCurveID(id int) *MakeFloatingRateLeg {
	b.forecastCurveID = id
	b.hasForecast = true
	return b
}

func (b *MakeFloatingRateLeg) Build() (*Leg, error) {
	if !b.hasDef {
		return nil, cashflows.ValueNotSetError{Field: "rateDefinition"}
	}
	if b.currency == market.NoCurrency {
		return nil, cashflows.ValueNotSetError{Field: "currency"}
	}
	if b.notional <= 0 {
		return nil, cashflows.ValueNotSetError{Field: "notional"}
	}
	schedule, err := b.build(b.def.Frequency)
	if err != nil {
		return nil, fmt.Errorf("MakeFloatingRateLeg.Build: %w", err)
	}

	var cfs []cashflows.Cashflow
	if b.notionalExchange {
		cfs = append(cfs, cashflows.NewDisbursement(b.notional, schedule[0], b.currency, b.side.Inverse()))
	}
	for i := 0; i < len(schedule)-1; i++ {
		cfs = append(cfs, cashflows.NewFloatingRateCoupon(
			b.notional, b.spread, schedule[i], schedule[i+1], schedule[i+1], b.def, b.currency, b.side))
	}
	if b.notionalExchange {
		cfs = append(cfs, cashflows.NewRedemption(b.notional, schedule[len(schedule)-1], b.currency, b.side))
	}
	if b.hasDiscount {
		for _, cf := range cfs {
			cf.SetDiscountCurveID(b.discountCurveID)
		}
	}
	if b.hasForecast {
		setForecastCurveID(cfs, b.forecastCurveID)
	}
	return &Leg{
		cashflows: cfs,
		startDate: schedule[0],
		endDate:   schedule[len(schedule)-1],
		side:      b.side,
		currency:  b.currency,
		notional:  b.notional,
	}, nil
}
