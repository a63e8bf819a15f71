package indices

import (
	"fmt"
	"sync"
	"time"

	"github.com/meenmo/rateslib/curves"
	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/utils"
)

// OvernightIndex is a compounded overnight benchmark (SOFR, ESTR, TONAR).
// Besides the daily rate fixings it maintains the synthetic index-level
// series index(t+1) = index(t) * (1 + r_t * yf(t, t+1)), which realized
// periods are read from. The series is built lazily on first read; the
// cache is mutex-guarded so concurrent readers can share one index.
type OvernightIndex struct {
	fixingTable
	name string
	def  rates.Definition
	term curves.YieldTermStructure

	mu     sync.RWMutex
	levels map[time.Time]float64
}

// NewOvernightIndex builds an overnight index quoted under def.
func NewOvernightIndex(name string, def rates.Definition) *OvernightIndex {
	return &OvernightIndex{
		fixingTable: newFixingTable(),
		name:        name,
		def:         def,
	}
}

// LinkTo attaches the projection term structure.
func (o *OvernightIndex) LinkTo(ts curves.YieldTermStructure) *OvernightIndex {
	o.term = ts
	return o
}

// AddFixing records a realized daily rate and invalidates the level series.
func (o *OvernightIndex) AddFixing(d time.Time, rate float64) *OvernightIndex {
	o.addFixing(d, rate)
	o.mu.Lock()
	o.levels = nil
	o.mu.Unlock()
	return o
}

// FillMissingFixings interpolates fixings for gap days and invalidates the
// level series.
func (o *OvernightIndex) FillMissingFixings(interp curves.Interpolator) error {
	if err := o.fillMissingFixings(interp); err != nil {
		return err
	}
	o.mu.Lock()
	o.levels = nil
	o.mu.Unlock()
	return nil
}

func (o *OvernightIndex) Name() string                     { return o.name }
func (o *OvernightIndex) Tenor() utils.Period              { return utils.NewPeriod(1, utils.UnitDays) }
func (o *OvernightIndex) RateDefinition() rates.Definition { return o.def }

func (o *OvernightIndex) ReferenceDate() time.Time {
	if o.term == nil {
		return time.Time{}
	}
	return o.term.ReferenceDate()
}

func (o *OvernightIndex) TermStructure() curves.YieldTermStructure { return o.term }

func (o *OvernightIndex) Fixing(d time.Time) (float64, error) {
	return o.fixing(d)
}

// IndexLevel returns the synthetic compounded index level on d, seeded at
// 1.0 on the first fixing date.
func (o *OvernightIndex) IndexLevel(d time.Time) (float64, error) {
	levels, err := o.levelSeries()
	if err != nil {
		return 0, err
	}
	lv, ok := levels[d]
	if !ok {
		return 0, NotFoundError{What: fmt.Sprintf("index level on %s", d.Format("2006-01-02"))}
	}
	return lv, nil
}

func (o *OvernightIndex) levelSeries() (map[time.Time]float64, error) {
	o.mu.RLock()
	if o.levels != nil {
		levels := o.levels
		o.mu.RUnlock()
		return levels, nil
	}
	o.mu.RUnlock()

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.levels != nil {
		return o.levels, nil
	}

	dates := o.sortedFixingDates()
	levels := make(map[time.Time]float64, len(dates)+1)
	if len(dates) == 0 {
		o.levels = levels
		return levels, nil
	}

	level := 1.0
	levels[dates[0]] = level
	for d := dates[0]; d.Before(dates[len(dates)-1].AddDate(0, 0, 1)); d = d.AddDate(0, 0, 1) {
		r, err := o.fixing(d)
		if err != nil {
			return nil, err
		}
		next := d.AddDate(0, 0, 1)
		level *= 1.0 + r*o.def.DayCounter.YearFraction(d, next)
		levels[next] = level
	}
	o.levels = levels
	return levels, nil
}

// ForwardRate reads realized periods off the compounded level series and
// future periods off the curve, blending across the reference date.
func (o *OvernightIndex) ForwardRate(start, end time.Time, def rates.Definition) (float64, error) {
	if o.term == nil {
		return 0, fmt.Errorf("OvernightIndex.ForwardRate: %w", NotFoundError{What: fmt.Sprintf("term structure for %s", o.name)})
	}
	ref := o.term.ReferenceDate()

	switch {
	case !start.Before(ref):
		return o.term.ForwardRate(start, end, def)

	case end.Before(ref) || end.Equal(ref):
		factor, err := o.realizedFactor(start, end)
		if err != nil {
			return 0, fmt.Errorf("OvernightIndex.ForwardRate: %w", err)
		}
		implied, err := rates.ImpliedRateFromDates(factor, def, start, end)
		if err != nil {
			return 0, fmt.Errorf("OvernightIndex.ForwardRate: %w", err)
		}
		return implied.Rate, nil

	default:
		past, err := o.realizedFactor(start, ref)
		if err != nil {
			return 0, fmt.Errorf("OvernightIndex.ForwardRate: %w", err)
		}
		dfEnd, err := o.term.DiscountFactor(end)
		if err != nil {
			return 0, fmt.Errorf("OvernightIndex.ForwardRate: %w", err)
		}
		implied, err := rates.ImpliedRateFromDates(past/dfEnd, def, start, end)
		if err != nil {
			return 0, fmt.Errorf("OvernightIndex.ForwardRate: %w", err)
		}
		return implied.Rate, nil
	}
}

// realizedFactor is the growth factor over [start, end] as the ratio of
// compounded index levels.
func (o *OvernightIndex) realizedFactor(start, end time.Time) (float64, error) {
	levels, err := o.levelSeries()
	if err != nil {
		return 0, err
	}
	lvStart, ok := levels[start]
	if !ok {
		return 0, NotFoundError{What: fmt.Sprintf("index level on %s", start.Format("2006-01-02"))}
	}
	lvEnd, ok := levels[end]
	if !ok {
		return 0, NotFoundError{What: fmt.Sprintf("index level on %s", end.Format("2006-01-02"))}
	}
	return lvEnd / lvStart, nil
}

// AdvanceToPeriod rolls the curve by p and synthesizes the daily fixings
// between the old and new reference dates from one-day discount-factor
// ratios, extending the compounded level series consistently.
func (o *OvernightIndex) AdvanceToPeriod(p utils.Period) (InterestRateIndex, error) {
	if p.IsNegative() {
		return nil, fmt.Errorf("OvernightIndex.AdvanceToPeriod: negative period %s", p)
	}
	if o.term == nil {
		return nil, fmt.Errorf("OvernightIndex.AdvanceToPeriod: %w", NotFoundError{What: fmt.Sprintf("term structure for %s", o.name)})
	}

	newTerm, err := o.term.AdvanceToPeriod(p)
	if err != nil {
		return nil, fmt.Errorf("OvernightIndex.AdvanceToPeriod: %w", err)
	}
	out := &OvernightIndex{
		fixingTable: fixingTable{fixings: o.cloneFixings()},
		name:        o.name,
		def:         o.def,
		term:        newTerm,
	}
	if err := synthesizeDailyFixings(&out.fixingTable, o.term, o.term.ReferenceDate(), newTerm.ReferenceDate(), o.def.DayCounter); err != nil {
		return nil, fmt.Errorf("OvernightIndex.AdvanceToPeriod: %w", err)
	}
	return out, nil
}
