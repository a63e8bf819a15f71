package indices

import (
	"fmt"
	"time"

	"github.com/meenmo/rateslib/curves"
	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/utils"
)

// IborIndex is a term benchmark (EURIBOR6M, TIBOR3M, CD91, ...) with a
// fixing table for realized values and a forward curve for projection.
type IborIndex struct {
	fixingTable
	name  string
	tenor utils.Period
	def   rates.Definition
	term  curves.YieldTermStructure
}

// NewIborIndex builds an index quoted under def with the given tenor.
// The projection curve is attached with LinkTo.
func NewIborIndex(name string, tenor utils.Period, def rates.Definition) *IborIndex {
	return &IborIndex{
		fixingTable: newFixingTable(),
		name:        name,
		tenor:       tenor,
		def:         def,
	}
}

// LinkTo attaches the projection term structure. Part of single-threaded
// setup, not safe once a pricing pass has started.
func (i *IborIndex) LinkTo(ts curves.YieldTermStructure) *IborIndex {
	i.term = ts
	return i
}

// AddFixing records a realized fixing.
func (i *IborIndex) AddFixing(d time.Time, rate float64) *IborIndex {
	i.addFixing(d, rate)
	return i
}

// FillMissingFixings interpolates fixings for the gap days between the
// first and last recorded fixing dates.
func (i *IborIndex) FillMissingFixings(interp curves.Interpolator) error {
	return i.fillMissingFixings(interp)
}

func (i *IborIndex) Name() string                  { return i.name }
func (i *IborIndex) Tenor() utils.Period           { return i.tenor }
func (i *IborIndex) RateDefinition() rates.Definition { return i.def }

func (i *IborIndex) ReferenceDate() time.Time {
	if i.term == nil {
		return time.Time{}
	}
	return i.term.ReferenceDate()
}

func (i *IborIndex) TermStructure() curves.YieldTermStructure { return i.term }

// Fixing returns the realized rate on d. Dates after the reference date
// have no fixing by definition.
func (i *IborIndex) Fixing(d time.Time) (float64, error) {
	return i.fixing(d)
}

// ForwardRate blends realized fixings and the projection curve around the
// reference date.
func (i *IborIndex) ForwardRate(start, end time.Time, def rates.Definition) (float64, error) {
	if i.term == nil {
		return 0, fmt.Errorf("IborIndex.ForwardRate: %w", NotFoundError{What: fmt.Sprintf("term structure for %s", i.name)})
	}
	ref := i.term.ReferenceDate()

	switch {
	case !start.Before(ref):
		// Entirely in the future: curve-implied.
		return i.term.ForwardRate(start, end, def)

	case end.Before(ref) || end.Equal(ref):
		// Entirely realized: average rate implied by compounding fixings.
		factor, err := i.compoundedFactor(start, end, i.def.DayCounter)
		if err != nil {
			return 0, fmt.Errorf("IborIndex.ForwardRate: %w", err)
		}
		implied, err := rates.ImpliedRateFromDates(factor, def, start, end)
		if err != nil {
			return 0, fmt.Errorf("IborIndex.ForwardRate: %w", err)
		}
		return implied.Rate, nil

	default:
		// Straddles the reference date: realized piece compounded with the
		// curve-implied piece.
		past, err := i.compoundedFactor(start, ref, i.def.DayCounter)
		if err != nil {
			return 0, fmt.Errorf("IborIndex.ForwardRate: %w", err)
		}
		dfEnd, err := i.term.DiscountFactor(end)
		if err != nil {
			return 0, fmt.Errorf("IborIndex.ForwardRate: %w", err)
		}
		implied, err := rates.ImpliedRateFromDates(past/dfEnd, def, start, end)
		if err != nil {
			return 0, fmt.Errorf("IborIndex.ForwardRate: %w", err)
		}
		return implied.Rate, nil
	}
}

// AdvanceToPeriod rolls the projection curve by p and records a synthesized
// fixing for every day between the old and new reference dates, implied
// from one-day discount-factor ratios of the old curve.
func (i *IborIndex) AdvanceToPeriod(p utils.Period) (InterestRateIndex, error) {
	if p.IsNegative() {
		return nil, fmt.Errorf("IborIndex.AdvanceToPeriod: negative period %s", p)
	}
	if i.term == nil {
		return nil, fmt.Errorf("IborIndex.AdvanceToPeriod: %w", NotFoundError{What: fmt.Sprintf("term structure for %s", i.name)})
	}

	newTerm, err := i.term.AdvanceToPeriod(p)
	if err != nil {
		return nil, fmt.Errorf("IborIndex.AdvanceToPeriod: %w", err)
	}

	out := &IborIndex{
		fixingTable: fixingTable{fixings: i.cloneFixings()},
		name:        i.name,
		tenor:       i.tenor,
		def:         i.def,
		term:        newTerm,
	}
	if err := synthesizeDailyFixings(&out.fixingTable, i.term, i.term.ReferenceDate(), newTerm.ReferenceDate(), i.def.DayCounter); err != nil {
		return nil, fmt.Errorf("IborIndex.AdvanceToPeriod: %w", err)
	}
	return out, nil
}

// synthesizeDailyFixings writes one simple daily rate per calendar day of
// [from, to), implied by the old curve's one-day discount-factor ratio.
func synthesizeDailyFixings(table *fixingTable, old curves.YieldTermStructure, from, to time.Time, dc utils.DayCounter) error {
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		next := d.AddDate(0, 0, 1)
		df1, err := old.DiscountFactor(d)
		if err != nil {
			return err
		}
		df2, err := old.DiscountFactor(next)
		if err != nil {
			return err
		}
		yf := dc.YearFraction(d, next)
		if yf == 0 {
			continue
		}
		table.addFixing(d, (df1/df2-1.0)/yf)
	}
	return nil
}
