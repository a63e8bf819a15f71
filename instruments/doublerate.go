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

// DoubleRateInstrument changes its coupon terms at changeRateDate: fixed
// to fixed at a new rate, fixed to floating, or floating to fixed. One
// amortization spans both parts.
type DoubleRateInstrument struct {
	common
	rateType         RateType
	changeRateDate   time.Time
	notionalAtChange float64

	firstRate    rates.InterestRate
	secondRate   rates.InterestRate
	firstSpread  float64
	secondSpread float64
	firstDef     rates.Definition
	secondDef    rates.Definition

	// partOf[i] is 0 when cashflows[i] belongs to the part before the
	// change date, 1 after.
	partOf []int
}

func (d *DoubleRateInstrument) RateType() RateType          { return d.rateType }
func (d *DoubleRateInstrument) ChangeRateDate() time.Time   { return d.changeRateDate }
func (d *DoubleRateInstrument) NotionalAtChange() float64   { return d.notionalAtChange }
func (d *DoubleRateInstrument) FirstRate() rates.InterestRate  { return d.firstRate }
func (d *DoubleRateInstrument) SecondRate() rates.InterestRate { return d.secondRate }
func (d *DoubleRateInstrument) FirstSpread() float64           { return d.firstSpread }
func (d *DoubleRateInstrument) SecondSpread() float64          { return d.secondSpread }

func (d *DoubleRateInstrument) Clone() *DoubleRateInstrument {
	cp := *d
	cp.cashflows = d.cloneCashflows()
	cp.partOf = append([]int{}, d.partOf...)
	return &cp
}

// SetForecastCurveID binds every floating coupon to the forecast curve id.
func (d *DoubleRateInstrument) SetForecastCurveID(id int) {
	setForecastCurveID(d.cashflows, id)
}

// SplitAtChangeDate closes each part into a standalone instrument: the
// first part gets a synthetic redemption of the balance at the change
// date, the second a synthetic disbursement of the same amount. The
// synthetic cashflows are new and carry no registry ids. Cashflows are
// cloned, so solving on a part never mutates the whole.
func (d *DoubleRateInstrument) SplitAtChangeDate() (Instrument, Instrument, error) {
	var first, second []cashflows.Cashflow
	for i, cf := range d.cashflows {
		if d.partOf[i] == 0 {
			first = append(first, cf.Clone())
		} else {
			second = append(second, cf.Clone())
		}
	}
	closing := cashflows.NewRedemption(d.notionalAtChange, d.changeRateDate, d.currency, d.side)
	opening := cashflows.NewDisbursement(d.notionalAtChange, d.changeRateDate, d.currency, d.side.Inverse())
	first = append(first, closing)
	second = append([]cashflows.Cashflow{opening}, second...)

	firstInst, err := d.partInstrument(first, d.startDate, d.changeRateDate, d.notional, true)
	if err != nil {
		return nil, nil, fmt.Errorf("SplitAtChangeDate: %w", err)
	}
	secondInst, err := d.partInstrument(second, d.changeRateDate, d.endDate, d.notionalAtChange, false)
	if err != nil {
		return nil, nil, fmt.Errorf("SplitAtChangeDate: %w", err)
	}
	return firstInst, secondInst, nil
}

func (d *DoubleRateInstrument) partInstrument(cfs []cashflows.Cashflow, start, end time.Time, notional float64, isFirst bool) (Instrument, error) {
	fixed := (isFirst && d.rateType != FloatingThenFixed) || (!isFirst && d.rateType != FixedThenFloating)
	base := common{
		cashflows: cfs,
		startDate: start,
		endDate:   end,
		side:      d.side,
		currency:  d.currency,
		notional:  notional,
		structure: d.structure,
	}
	if fixed {
		rate := d.firstRate
		if !isFirst {
			rate = d.secondRate
		}
		return &FixedRateInstrument{common: base, rate: rate}, nil
	}
	spread, def := d.firstSpread, d.firstDef
	if !isFirst {
		spread, def = d.secondSpread, d.secondDef
	}
	return &FloatingRateInstrument{common: base, spread: spread, def: def}, nil
}

// MakeDoubleRateInstrument builds a DoubleRateInstrument. Fixed parts take
// a rate, floating parts a definition and spread; the first fixed rate (or
// the second, when the first part floats) drives an EqualPayments
// amortization.
type MakeDoubleRateInstrument struct {
	startDate      time.Time
	endDate        time.Time
	changeRateDate time.Time
	frequency      utils.Frequency
	structure      Structure
	rateType       RateType
	hasRateType    bool

	firstRate     rates.InterestRate
	hasFirstRate  bool
	secondRate    rates.InterestRate
	hasSecondRate bool
	firstSpread   float64
	secondSpread  float64
	firstDef      rates.Definition
	hasFirstDef   bool
	secondDef     rates.Definition
	hasSecondDef  bool

	notional   float64
	currency   market.Currency
	side       cashflows.Side
	cal        calendar.CalendarID
	convention calendar.BusinessDayConvention

	discountCurveID int
	hasDiscount     bool
	forecastCurveID int
	hasForecast     bool
}

func NewMakeDoubleRateInstrument() *MakeDoubleRateInstrument {
	return &MakeDoubleRateInstrument{
		structure:  Bullet,
		frequency:  utils.NoFrequency,
		side:       cashflows.Receive,
		cal:        calendar.NullCalendar,
		convention: calendar.Unadjusted,
	}
}

func (b *MakeDoubleRateInstrument) WithStartDate(d time.Time) *MakeDoubleRateInstrument {
	b.startDate = d
	return b
}

func (b *MakeDoubleRateInstrument) WithEndDate(d time.Time) *MakeDoubleRateInstrument {
	b.endDate = d
	return b
}

func (b *MakeDoubleRateInstrument) WithChangeRateDate(d time.Time) *MakeDoubleRateInstrument {
	b.changeRateDate = d
	return b
}

func (b *MakeDoubleRateInstrument) WithFrequency(f utils.Frequency) *MakeDoubleRateInstrument {
	b.frequency = f
	return b
}

func (b *MakeDoubleRateInstrument) WithStructure(s Structure) *MakeDoubleRateInstrument {
	b.structure = s
	return b
}

func (b *MakeDoubleRateInstrument) WithRateType(rt RateType) *MakeDoubleRateInstrument {
	b.rateType = rt
	b.hasRateType = true
	return b
}

func (b *MakeDoubleRateInstrument) WithFirstRate(r rates.InterestRate) *MakeDoubleRateInstrument {
	b.firstRate = r
	b.hasFirstRate = true
	return b
}

func (b *MakeDoubleRateInstrument) WithSecondRate(r rates.InterestRate) *MakeDoubleRateInstrument {
	b.secondRate = r
	b.hasSecondRate = true
	return b
}

func (b *MakeDoubleRateInstrument) WithFirstSpread(s float64) *MakeDoubleRateInstrument {
	b.firstSpread = s
	return b
}

func (b *MakeDoubleRateInstrument) WithSecondSpread(s float64) *MakeDoubleRateInstrument {
	b.secondSpread = s
	return b
}

func (b *MakeDoubleRateInstrument) WithFirstRateDefinition(def rates.Definition) *MakeDoubleRateInstrument {
	b.firstDef = def
	b.hasFirstDef = true
	return b
}

func (b *MakeDoubleRateInstrument) WithSecondRateDefinition(def rates.Definition) *MakeDoubleRateInstrument {
	b.secondDef = def
	b.hasSecondDef = true
	return b
}

func (b *MakeDoubleRateInstrument) WithNotional(n float64) *MakeDoubleRateInstrument {
	b.notional = n
	return b
}

func (b *MakeDoubleRateInstrument) WithCurrency(c market.Currency) *MakeDoubleRateInstrument {
	b.currency = c
	return b
}

func (b *MakeDoubleRateInstrument) WithSide(s cashflows.Side) *MakeDoubleRateInstrument {
	b.side = s
	return b
}

func (b *MakeDoubleRateInstrument) WithCalendar(cal calendar.CalendarID) *MakeDoubleRateInstrument {
	b.cal = cal
	return b
}

func (b *MakeDoubleRateInstrument) WithConvention(conv calendar.BusinessDayConvention) *MakeDoubleRateInstrument {
	b.convention = conv
	return b
}

func (b *MakeDoubleRateInstrument) WithDiscountCurveID(id int) *MakeDoubleRateInstrument {
	b.discountCurveID = id
	b.hasDiscount = true
	return b
}

func (b *MakeDoubleRateInstrument) WithForecastCurveID(id int) *MakeDoubleRateInstrument {
	b.forecastCurveID = id
	b.hasForecast = true
	return b
}

func (b *MakeDoubleRateInstrument) Build() (*DoubleRateInstrument, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	firstDates, err := b.partSchedule(b.startDate, b.changeRateDate)
	if err != nil {
		return nil, fmt.Errorf("MakeDoubleRateInstrument.Build: %w", err)
	}
	secondDates, err := b.partSchedule(b.changeRateDate, b.endDate)
	if err != nil {
		return nil, fmt.Errorf("MakeDoubleRateInstrument.Build: %w", err)
	}
	schedule := append(append([]time.Time{}, firstDates...), secondDates[1:]...)

	redemptions, err := profileRedemptions(b.structure, schedule, b.amortizationRate(), b.notional)
	if err != nil {
		return nil, fmt.Errorf("MakeDoubleRateInstrument.Build: %w", err)
	}
	notionals := outstandingNotionals(b.notional, redemptions)

	inst := &DoubleRateInstrument{
		rateType:     b.rateType,
		changeRateDate: firstDates[len(firstDates)-1],
		firstRate:    b.firstRate,
		secondRate:   b.secondRate,
		firstSpread:  b.firstSpread,
		secondSpread: b.secondSpread,
		firstDef:     b.firstDef,
		secondDef:    b.secondDef,
	}
	inst.currency = b.currency
	inst.side = b.side
	inst.structure = b.structure
	inst.startDate = schedule[0]
	inst.endDate = schedule[len(schedule)-1]
	inst.notional = b.notional

	appendCf := func(cf cashflows.Cashflow, part int) {
		inst.cashflows = append(inst.cashflows, cf)
		inst.partOf = append(inst.partOf, part)
	}
	appendCf(cashflows.NewDisbursement(b.notional, schedule[0], b.currency, b.side.Inverse()), 0)

	outstanding := b.notional
	for i := 0; i < len(schedule)-1; i++ {
		start, end := schedule[i], schedule[i+1]
		isFirst := !end.After(inst.changeRateDate)
		part := 1
		if isFirst {
			part = 0
		}
		if end.Equal(inst.changeRateDate) {
			inst.notionalAtChange = outstanding - redemptions[i]
		}
		appendCf(b.couponFor(isFirst, notionals[i], start, end), part)
		before := len(inst.cashflows)
		inst.cashflows = appendPrincipal(inst.cashflows, redemptions[i], end, b.currency, b.side)
		if len(inst.cashflows) > before {
			inst.partOf = append(inst.partOf, part)
		}
		outstanding -= redemptions[i]
	}

	if b.hasDiscount {
		inst.SetDiscountCurveID(b.discountCurveID)
	}
	if b.hasForecast {
		inst.SetForecastCurveID(b.forecastCurveID)
	}
	return inst, nil
}

func (b *MakeDoubleRateInstrument) validate() error {
	if !b.hasRateType {
		return cashflows.ValueNotSetError{Field: "rateType"}
	}
	if b.currency == market.NoCurrency {
		return cashflows.ValueNotSetError{Field: "currency"}
	}
	if b.notional <= 0 {
		return cashflows.ValueNotSetError{Field: "notional"}
	}
	if b.startDate.IsZero() || b.endDate.IsZero() || b.changeRateDate.IsZero() {
		return cashflows.ValueNotSetError{Field: "dates"}
	}
	if !b.changeRateDate.After(b.startDate) || !b.endDate.After(b.changeRateDate) {
		return fmt.Errorf("MakeDoubleRateInstrument.Build: change date %s outside (%s, %s)",
			b.changeRateDate.Format("2006-01-02"), b.startDate.Format("2006-01-02"), b.endDate.Format("2006-01-02"))
	}
	if b.frequency == utils.NoFrequency {
		return cashflows.ValueNotSetError{Field: "frequency"}
	}
	firstFixed := b.rateType != FloatingThenFixed
	secondFixed := b.rateType != FixedThenFloating
	if firstFixed && !b.hasFirstRate {
		return cashflows.ValueNotSetError{Field: "firstRate"}
	}
	if !firstFixed && !b.hasFirstDef {
		return cashflows.ValueNotSetError{Field: "firstRateDefinition"}
	}
	if secondFixed && !b.hasSecondRate {
		return cashflows.ValueNotSetError{Field: "secondRate"}
	}
	if !secondFixed && !b.hasSecondDef {
		return cashflows.ValueNotSetError{Field: "secondRateDefinition"}
	}
	return nil
}

// amortizationRate is the fixed rate driving the redemption profile: the
// first part's rate, or the second's when the first part floats.
func (b *MakeDoubleRateInstrument) amortizationRate() rates.InterestRate {
	if b.rateType == FloatingThenFixed {
		return b.secondRate
	}
	return b.firstRate
}

func (b *MakeDoubleRateInstrument) couponFor(isFirst bool, notional float64, start, end time.Time) cashflows.Cashflow {
	fixed := (isFirst && b.rateType != FloatingThenFixed) || (!isFirst && b.rateType != FixedThenFloating)
	if fixed {
		rate := b.firstRate
		if !isFirst {
			rate = b.secondRate
		}
		return cashflows.NewFixedRateCoupon(notional, rate, start, end, end, b.currency, b.side)
	}
	spread, def := b.firstSpread, b.firstDef
	if !isFirst {
		spread, def = b.secondSpread, b.secondDef
	}
	return cashflows.NewFloatingRateCoupon(notional, spread, start, end, end, def, b.currency, b.side)
}

func (b *MakeDoubleRateInstrument) partSchedule(start, end time.Time) ([]time.Time, error) {
	m := NewMakeSchedule(start, end).
		WithCalendar(b.cal).
		WithConvention(b.convention)
	if _, err := m.WithFrequency(b.frequency); err != nil {
		return nil, err
	}
	return m.Build()
}
