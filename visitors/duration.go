package visitors

import (
	"fmt"

	"github.com/meenmo/rateslib/instruments"
	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/utils"
)

// DurationConstVisitor computes Macaulay-style duration: the
// present-value weighted average time to payment, in ACT/365F years from
// the evaluation date.
type DurationConstVisitor struct {
	data         []market.Data
	includeToday bool
	dayCounter   utils.DayCounter
	sumPV        float64
	sumWeighted  float64
}

func NewDurationConstVisitor(data []market.Data) *DurationConstVisitor {
	return &DurationConstVisitor{
		data:       data,
		dayCounter: utils.NewDayCounter(utils.Actual365Fixed),
	}
}

func (v *DurationConstVisitor) WithIncludeTodayCashflows(on bool) *DurationConstVisitor {
	v.includeToday = on
	return v
}

func (v *DurationConstVisitor) Visit(inst instruments.Instrument) error {
	for _, cf := range inst.Cashflows() {
		d, err := dataFor(cf, v.data)
		if err != nil {
			return fmt.Errorf("DurationConstVisitor.Visit: %w", err)
		}
		if !includeCashflow(cf, d, v.includeToday) {
			continue
		}
		pv, err := presentValue(cf, d)
		if err != nil {
			return fmt.Errorf("DurationConstVisitor.Visit: %w", err)
		}
		tau := v.dayCounter.YearFraction(d.ReferenceDate, cf.PaymentDate())
		v.sumPV += pv
		v.sumWeighted += tau * pv
	}
	return nil
}

// Duration returns the weighted average time, 0 when nothing priced.
func (v *DurationConstVisitor) Duration() float64 {
	if v.sumPV == 0 {
		return 0
	}
	return v.sumWeighted / v.sumPV
}
