package visitors

import (
	"fmt"

	"github.com/meenmo/rateslib/cashflows"
	"github.com/meenmo/rateslib/instruments"
	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/solvers"
)

// ParValueConstVisitor solves the coupon rate (or spread, for floating
// instruments) that makes the visited instrument's NPV zero. The
// instrument is cloned before solving; ids and curve bindings survive the
// clone, so the closed loop re-prices against the same market data.
//
// A double-rate instrument splits at its change date into two closed
// sub-instruments, each solved independently; their synthetic closing
// cashflows carry no ids, so a Model is required to generate fresh data.
type ParValueConstVisitor struct {
	data         []market.Data
	model        market.Model
	includeToday bool
	cfg          solvers.Config
	values       []float64
}

func NewParValueConstVisitor(data []market.Data) *ParValueConstVisitor {
	return &ParValueConstVisitor{data: data, cfg: solvers.DefaultConfig}
}

// WithModel enables double-rate instruments.
func (v *ParValueConstVisitor) WithModel(m market.Model) *ParValueConstVisitor {
	v.model = m
	return v
}

func (v *ParValueConstVisitor) WithIncludeTodayCashflows(on bool) *ParValueConstVisitor {
	v.includeToday = on
	return v
}

func (v *ParValueConstVisitor) Visit(inst instruments.Instrument) error {
	switch t := inst.(type) {
	case *instruments.FixedRateInstrument:
		value, err := v.solveRate(t.Clone(), v.data)
		if err != nil {
			return fmt.Errorf("ParValueConstVisitor.Visit: %w", err)
		}
		v.values = append(v.values, value)
		return nil
	case *instruments.FloatingRateInstrument:
		value, err := v.solveSpread(t.Clone(), v.data)
		if err != nil {
			return fmt.Errorf("ParValueConstVisitor.Visit: %w", err)
		}
		v.values = append(v.values, value)
		return nil
	case *instruments.DoubleRateInstrument:
		return v.visitDoubleRate(t)
	default:
		return instruments.NotImplementedError{What: fmt.Sprintf("par value for %T", inst)}
	}
}

// Values returns one solved value per visited instrument, two for each
// double-rate instrument (first part, then second).
func (v *ParValueConstVisitor) Values() []float64 {
	return v.values
}

func (v *ParValueConstVisitor) solveRate(inst *instruments.FixedRateInstrument, data []market.Data) (float64, error) {
	return solvers.Brent(func(r float64) (float64, error) {
		inst.SetRateValue(r)
		return npvCashflows(inst.Cashflows(), data, v.includeToday)
	}, -1, 1, v.cfg)
}

func (v *ParValueConstVisitor) solveSpread(inst *instruments.FloatingRateInstrument, data []market.Data) (float64, error) {
	if err := fixCashflows(inst.Cashflows(), data); err != nil {
		return 0, err
	}
	return solvers.Brent(func(s float64) (float64, error) {
		inst.SetSpreadValue(s)
		return npvCashflows(inst.Cashflows(), data, v.includeToday)
	}, -1, 1, v.cfg)
}

func (v *ParValueConstVisitor) visitDoubleRate(inst *instruments.DoubleRateInstrument) error {
	if v.model == nil {
		return fmt.Errorf("ParValueConstVisitor.Visit: double rate instruments need a model")
	}
	first, second, err := inst.SplitAtChangeDate()
	if err != nil {
		return fmt.Errorf("ParValueConstVisitor.Visit: %w", err)
	}
	for _, part := range []instruments.Instrument{first, second} {
		indexer := NewIndexingVisitor()
		if err := indexer.Visit(part); err != nil {
			return fmt.Errorf("ParValueConstVisitor.Visit: %w", err)
		}
		data, err := v.model.Generate(indexer.Requests())
		if err != nil {
			return fmt.Errorf("ParValueConstVisitor.Visit: %w", err)
		}
		var value float64
		switch p := part.(type) {
		case *instruments.FixedRateInstrument:
			value, err = v.solveRate(p, data)
		case *instruments.FloatingRateInstrument:
			value, err = v.solveSpread(p, data)
		}
		if err != nil {
			return fmt.Errorf("ParValueConstVisitor.Visit: %w", err)
		}
		v.values = append(v.values, value)
	}
	return nil
}

// npvCashflows prices a cashflow slice against data, without the visitor
// plumbing. The par and z-spread objectives lean on it.
func npvCashflows(cfs []cashflows.Cashflow, data []market.Data, includeToday bool) (float64, error) {
	total := 0.0
	for _, cf := range cfs {
		d, err := dataFor(cf, data)
		if err != nil {
			return 0, err
		}
		if !includeCashflow(cf, d, includeToday) {
			continue
		}
		pv, err := presentValue(cf, d)
		if err != nil {
			return 0, err
		}
		total += pv
	}
	return total, nil
}
