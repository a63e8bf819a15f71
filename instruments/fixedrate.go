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

// MakeFixedRateInstrument builds a FixedRateInstrument. Schedule defaults
// are NullCalendar, Unadjusted, Backward; everything financial (dates,
// rate, notional, currency) must be set explicitly.
type MakeFixedRateInstrument struct {
	startDate       time.Time
	endDate         time.Time
	tenor           utils.Period
	frequency       utils.Frequency
	structure       Structure
	rate            rates.InterestRate
	hasRate         bool
	notional        float64
	currency        market.Currency
	side            cashflows.Side
	cal             calendar.CalendarID
	convention      calendar.BusinessDayConvention
	rule            DateGenerationRule
	firstCouponDate time.Time

	discountCurveID int
	hasDiscount     bool

	disbursements map[time.Time]float64
	redemptions   map[time.Time]float64
	couponDates   []time.Time
}

func NewMakeFixedRateInstrument() *MakeFixedRateInstrument {
	return &MakeFixedRateInstrument{
		structure:  Bullet,
		frequency:  utils.NoFrequency,
		side:       cashflows.Receive,
		cal:        calendar.NullCalendar,
		convention: calendar.Unadjusted,
		rule:       Backward,
	}
}

func (b *MakeFixedRateInstrument) WithStartDate(d time.Time) *MakeFixedRateInstrument {
	b.startDate = d
	return b
}

func (b *MakeFixedRateInstrument) WithEndDate(d time.Time) *MakeFixedRateInstrument {
	b.endDate = d
	return b
}

// WithTenor sets the maturity as start + tenor instead of an end date.
func (b *MakeFixedRateInstrument) WithTenor(p utils.Period) *MakeFixedRateInstrument {
	b.tenor = p
	return b
}

func (b *MakeFixedRateInstrument) WithFrequency(f utils.Frequency) *MakeFixedRateInstrument {
	b.frequency = f
	return b
}

func (b *MakeFixedRateInstrument) WithStructure(s Structure) *MakeFixedRateInstrument {
	b.structure = s
	return b
}

func (b *MakeFixedRateInstrument) WithRate(r rates.InterestRate) *MakeFixedRateInstrument {
	b.rate = r
	b.hasRate = true
	return b
}

func (b *MakeFixedRateInstrument) WithNotional(n float64) *MakeFixedRateInstrument {
	b.notional = n
	return b
}

func (b *MakeFixedRateInstrument) WithCurrency(c market.Currency) *MakeFixedRateInstrument {
	b.currency = c
	return b
}

func (b *MakeFixedRateInstrument) WithSide(s cashflows.Side) *MakeFixedRateInstrument {
	b.side = s
	return b
}

func (b *MakeFixedRateInstrument) WithCalendar(cal calendar.CalendarID) *MakeFixedRateInstrument {
	b.cal = cal
	return b
}

func (b *MakeFixedRateInstrument) WithConvention(conv calendar.BusinessDayConvention) *MakeFixedRateInstrument {
	b.convention = conv
	return b
}

func (b *MakeFixedRateInstrument) WithRule(rule DateGenerationRule) *MakeFixedRateInstrument {
	b.rule = rule
	return b
}

func (b *MakeFixedRateInstrument) WithFirstCouponDate(d time.Time) *MakeFixedRateInstrument {
	b.firstCouponDate = d
	return b
}

func (b *MakeFixedRateInstrument) WithDiscountCurveID(id int) *MakeFixedRateInstrument {
	b.discountCurveID = id
	b.hasDiscount = true
	return b
}

// WithCustomProfile supplies the principal events of the Other structure.
// Coupon boundaries beyond the event dates go in couponDates.
func (b *MakeFixedRateInstrument) WithCustomProfile(disbursements, redemptions map[time.Time]float64, couponDates []time.Time) *MakeFixedRateInstrument {
	b.structure = Other
	b.disbursements = disbursements
	b.redemptions = redemptions
	b.couponDates = couponDates
	return b
}

func (b *MakeFixedRateInstrument) Build() (*FixedRateInstrument, error) {
	if !b.hasRate {
		return nil, cashflows.ValueNotSetError{Field: "rate"}
	}
	if b.currency == market.NoCurrency {
		return nil, cashflows.ValueNotSetError{Field: "currency"}
	}

	inst := &FixedRateInstrument{rate: b.rate}
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
		return nil, fmt.Errorf("MakeFixedRateInstrument.Build: %w", err)
	}
	if b.hasDiscount {
		inst.SetDiscountCurveID(b.discountCurveID)
	}
	return inst, nil
}

func (b *MakeFixedRateInstrument) buildScheduled(inst *FixedRateInstrument) error {
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
	redemptions, err := profileRedemptions(b.structure, schedule, b.rate, b.notional)
	if err != nil {
		return err
	}
	notionals := outstandingNotionals(b.notional, redemptions)

	cfs := []cashflows.Cashflow{
		cashflows.NewDisbursement(b.notional, schedule[0], b.currency, b.side.Inverse()),
	}
	for i := 0; i < len(schedule)-1; i++ {
		cfs = append(cfs, cashflows.NewFixedRateCoupon(
			notionals[i], b.rate, schedule[i], schedule[i+1], schedule[i+1], b.currency, b.side))
		cfs = appendPrincipal(cfs, redemptions[i], schedule[i+1], b.currency, b.side)
	}

	inst.cashflows = cfs
	inst.startDate = schedule[0]
	inst.endDate = schedule[len(schedule)-1]
	inst.notional = b.notional
	return nil
}

func (b *MakeFixedRateInstrument) buildCustom(inst *FixedRateInstrument) error {
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
		cfs = append(cfs, cashflows.NewFixedRateCoupon(
			p.notional, b.rate, p.start, p.end, p.end, b.currency, b.side))
	}

	inst.cashflows = cfs
	inst.startDate = periods[0].start
	inst.endDate = periods[len(periods)-1].end
	inst.notional = total
	return nil
}

func (b *MakeFixedRateInstrument) buildSchedule(start, end time.Time) ([]time.Time, error) {
	s := NewMakeSchedule(start, end).
		WithCalendar(b.cal).
		WithConvention(b.convention).
		WithRule(b.rule)
	if !b.firstCouponDate.IsZero() {
		s.WithFirstCouponDate(b.firstCouponDate)
	}
	if b.structure != Zero {
		if b.frequency == utils.NoFrequency {
			return nil, cashflows.ValueNotSetError{Field: "frequency"}
		}
		if _, err := s.WithFrequency(b.frequency); err != nil {
			return nil, err
		}
	}
	return s.Build()
}
