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

// MakeFloatingRateInstrument builds a FloatingRateInstrument. The payment
// frequency is implied by the rate definition's frequency. EqualPayments
// is not supported: the payment level would depend on unfixed forwards.
type MakeFloatingRateInstrument struct {
	startDate       time.Time
	endDate         time.Time
	tenor           utils.Period
	structure       Structure
	spread          float64
	def             rates.Definition
	hasDef          bool
	notional        float64
	currency        market.Currency
	side            cashflows.Side
	cal             calendar.CalendarID
	convention      calendar.BusinessDayConvention
	rule            DateGenerationRule
	firstCouponDate time.Time

	discountCurveID int
	hasDiscount     bool
	forecastCurveID int
	hasForecast     bool

	disbursements map[time.Time]float64
	redemptions   map[time.Time]float64
	couponDates   []time.Time
}

func NewMakeFloatingRateInstrument() *MakeFloatingRateInstrument {
	return &MakeFloatingRateInstrument{
		structure:  Bullet,
		side:       cashflows.Receive,
		cal:        calendar.NullCalendar,
		convention: calendar.Unadjusted,
		rule:       Backward,
	}
}

func (b *MakeFloatingRateInstrument) WithStartDate(d time.Time) *MakeFloatingRateInstrument {
	b.startDate = d
	return b
}

func (b *MakeFloatingRateInstrument) WithEndDate(d time.Time) *MakeFloatingRateInstrument {
	b.endDate = d
	return b
}

func (b *MakeFloatingRateInstrument) WithTenor(p utils.Period) *MakeFloatingRateInstrument {
	b.tenor = p
	return b
}

func (b *MakeFloatingRateInstrument) WithStructure(s Structure) *MakeFloatingRateInstrument {
	b.structure = s
	return b
}

func (b *MakeFloatingRateInstrument) WithSpread(s float64) *MakeFloatingRateInstrument {
	b.spread = s
	return b
}

func (b *MakeFloatingRateInstrument) WithRateDefinition(def rates.Definition) *MakeFloatingRateInstrument {
	b.def = def
	b.hasDef = true
	return b
}

func (b *MakeFloatingRateInstrument) WithNotional(n float64) *MakeFloatingRateInstrument {
	b.notional = n
	return b
}

func (b *MakeFloatingRateInstrument) WithCurrency(c market.Currency) *MakeFloatingRateInstrument {
	b.currency = c
	return b
}

func (b *MakeFloatingRateInstrument) WithSide(s cashflows.Side) *MakeFloatingRateInstrument {
	b.side = s
	return b
}

func (b *MakeFloatingRateInstrument) WithCalendar(cal calendar.CalendarID) *MakeFloatingRateInstrument {
	b.cal = cal
	return b
}

func (b *MakeFloatingRateInstrument) WithConvention(conv calendar.BusinessDayConvention) *MakeFloatingRateInstrument {
	b.convention = conv
	return b
}

func (b *MakeFloatingRateInstrument) WithRule(rule DateGenerationRule) *MakeFloatingRateInstrument {
	b.rule = rule
	return b
}

func (b *MakeFloatingRateInstrument) WithFirstCouponDate(d time.Time) *MakeFloatingRateInstrument {
	b.firstCouponDate = d
	return b
}

func (b *MakeFloatingRateInstrument) WithDiscountCurveID(id int) *MakeFloatingRateInstrument {
	b.discountCurveID = id
	b.hasDiscount = true
	return b
}

func (b *MakeFloatingRateInstrument) WithForecastCurveID(id int) *MakeFloatingRateInstrument {
	b.forecastCurveID = id
	b.hasForecast = true
	return b
}

func (b *MakeFloatingRateInstrument) WithCustomProfile(disbursements, redemptions map[time.Time]float64, couponDates []time.Time) *MakeFloatingRateInstrument {
	b.structure = Other
	b.disbursements = disbursements
	b.redemptions = redemptions
	b.couponDates = couponDates
	return b
}

func (b *MakeFloatingRateInstrument) Build() (*FloatingRateInstrument, error) {
	if !b.hasDef {
		return nil, cashflows.ValueNotSetError{Field: "rateDefinition"}
	}
	if b.currency == market.NoCurrency {
		return nil, cashflows.ValueNotSetError{Field: "currency"}
	}
	if b.structure == EqualPayments {
		return nil, NotImplementedError{What: "equal payments on a floating rate instrument"}
	}

	inst := &FloatingRateInstrument{spread: b.spread, def: b.def}
	inst.currency = b.currency
	inst.side = b.side
	inst.structure = b.structure

	var err error
	if b.structure == Other {
		err = b.buildCustom(inst)
	} else {
		err = b.buildScheduled(inst)
	}
	if err != nil {
		return nil, fmt.Errorf("MakeFloatingRateInstrument.Build: %w", err)
	}
	if b.hasDiscount {
		inst.SetDiscountCurveID(b.discountCurveID)
	}
	if b.hasForecast {
		inst.SetForecastCurveID(b.forecastCurveID)
	}
	return inst, nil
}

func (b *MakeFloatingRateInstrument) buildScheduled(inst *FloatingRateInstrument) error {
	if b.startDate.IsZero() {
		return cashflows.ValueNotSetError{Field: "startDate"}
	}
	if b.notional <= 0 {
		return cashflows.ValueNotSetError{Field: "notional"}
	}
	end := b.endDate
	if end.IsZero() {
		if b.tenor.IsZero() {
			return cashflows.ValueNotSetError{Field: "endDate"}
		}
		end = utils.AddPeriod(b.startDate, b.tenor)
	}

	schedule, err := b.buildSchedule(b.startDate, end)
	if err != nil {
		return err
	}
	redemptions, err := profileRedemptions(b.structure, schedule, rates.InterestRate{}, b.notional)
	if err != nil {
		return err
	}
	notionals := outstandingNotionals(b.notional, redemptions)

	cfs := []cashflows.Cashflow{
		cashflows.NewDisbursement(b.notional, schedule[0], b.currency, b.side.Inverse()),
	}
	for i := 0; i < len(schedule)-1; i++ {
		cfs = append(cfs, cashflows.NewFloatingRateCoupon(
			notionals[i], b.spread, schedule[i], schedule[i+1], schedule[i+1], b.def, b.currency, b.side))
		cfs = appendPrincipal(cfs, redemptions[i], schedule[i+1], b.currency, b.side)
	}

	inst.cashflows = cfs
	inst.startDate = schedule[0]
	inst.endDate = schedule[len(schedule)-1]
	inst.notional = b.notional
	return nil
}

func (b *MakeFloatingRateInstrument) buildCustom(inst *FloatingRateInstrument) error {
	periods, err := customTimeline(b.disbursements, b.redemptions, b.couponDates)
	if err != nil {
		return err
	}

	var cfs []cashflows.Cashflow
	total := 0.0
	for _, d := range sortedEventDates(b.disbursements) {
		total += b.disbursements[d]
		cfs = append(cfs, cashflows.NewDisbursement(b.disbursements[d], d, b.currency, b.side.Inverse()))
	}
	for _, d := range sortedEventDates(b.redemptions) {
		cfs = append(cfs, cashflows.NewRedemption(b.redemptions[d], d, b.currency, b.side))
	}
	for _, p := range periods {
		cfs = append(cfs, cashflows.NewFloatingRateCoupon(
			p.notional, b.spread, p.start, p.end, p.end, b.def, b.currency, b.side))
	}

	inst.cashflows = cfs
	inst.startDate = periods[0].start
	inst.endDate = periods[len(periods)-1].end
	inst.notional = total
	return nil
}

func (b *MakeFloatingRateInstrument) buildSchedule(start, end time.Time) ([]time.Time, error) {
	s := NewMakeSchedule(start, end).
		WithCalendar(b.cal).
		WithConvention(b.convention).
		WithRule(b.rule)
	if !b.firstCouponDate.IsZero() {
		s.WithFirstCouponDate(b.firstCouponDate)
	}
	if b.structure != Zero {
		if b.def.Frequency == utils.NoFrequency || b.def.Frequency == utils.Once {
			return nil, cashflows.ValueNotSetError{Field: "frequency"}
		}
		if _, err := s.WithFrequency(b.def.Frequency); err != nil {
			return nil, err
		}
	}
	return s.Build()
}
