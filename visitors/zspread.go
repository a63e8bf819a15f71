package visitors

import (
	"fmt"

	"github.com/meenmo/rateslib/instruments"
	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/solvers"
)

// ZSpreadConstVisitor solves the constant spread over the discount
// curve's zero rates that reprices the visited instrument at the target
// value. Zero rates are implied from the generated discount factors under
// the caller's rate definition, so the spread is quoted in that
// convention. All cashflows are taken in the instrument's own currency.
type ZSpreadConstVisitor struct {
	data         []market.Data
	target       float64
	def          rates.Definition
	includeToday bool
	cfg          solvers.Config
	values       []float64
}

func NewZSpreadConstVisitor(data []market.Data, target float64, def rates.Definition) *ZSpreadConstVisitor {
	return &ZSpreadConstVisitor{data: data, target: target, def: def, cfg: solvers.DefaultConfig}
}

func (v *ZSpreadConstVisitor) WithIncludeTodayCashflows(on bool) *ZSpreadConstVisitor {
	v.includeToday = on
	return v
}

func (v *ZSpreadConstVisitor) Visit(inst instruments.Instrument) error {
	type leg struct {
		amount float64
		tau    float64
		zero   float64
	}
	var legs []leg
	for _, cf := range inst.Cashflows() {
		d, err := dataFor(cf, v.data)
		if err != nil {
			return fmt.Errorf("ZSpreadConstVisitor.Visit: %w", err)
		}
		if !includeCashflow(cf, d, v.includeToday) {
			continue
		}
		if !d.HasDf {
			return fmt.Errorf("ZSpreadConstVisitor.Visit: %w", market.ErrNoDiscountRequest)
		}
		amount, err := cf.Amount()
		if err != nil {
			return fmt.Errorf("ZSpreadConstVisitor.Visit: %w", err)
		}
		tau := v.def.DayCounter.YearFraction(d.ReferenceDate, cf.PaymentDate())
		zero, err := rates.ImpliedRate(1.0/d.Df, v.def, tau)
		if err != nil {
			return fmt.Errorf("ZSpreadConstVisitor.Visit: %w", err)
		}
		legs = append(legs, leg{amount: amount * cf.Side().Sign(), tau: tau, zero: zero.Rate})
	}

	value, err := solvers.Brent(func(z float64) (float64, error) {
		total := 0.0
		for _, l := range legs {
			shifted := rates.New(l.zero+z, v.def)
			total += l.amount * shifted.DiscountFactorFromYF(l.tau)
		}
		return total - v.target, nil
	}, -1, 1, v.cfg)
	if err != nil {
		return fmt.Errorf("ZSpreadConstVisitor.Visit: %w", err)
	}
	v.values = append(v.values, value)
	return nil
}

// Values returns one spread per visited instrument.
func (v *ZSpreadConstVisitor) Values() []float64 {
	return v.values
}
