// Package indices implements interest-rate indices: fixing tables, forward
// rates blended across the reference date, and snapshot time-advance.
package indices

import (
	"fmt"
	"time"

	"github.com/meenmo/rateslib/curves"
	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/utils"
)

// NotFoundError reports a missing fixing, curve or index.
type NotFoundError struct {
	What string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.What)
}

// InterestRateIndex is a floating-rate benchmark: realized fixings in the
// past, a forward curve in the future, and a blend across the boundary.
// Implementations must be safe for concurrent readers once constructed.
type InterestRateIndex interface {
	Name() string
	Tenor() utils.Period
	RateDefinition() rates.Definition
	ReferenceDate() time.Time
	TermStructure() curves.YieldTermStructure

	// Fixing returns the realized rate on d. It fails with NotFoundError
	// when d has no recorded fixing.
	Fixing(d time.Time) (float64, error)

	// ForwardRate returns the rate over [start, end] quoted under def:
	// realized (from fixings) when the window is entirely in the past,
	// curve-implied when entirely in the future, blended otherwise.
	ForwardRate(start, end time.Time, def rates.Definition) (float64, error)

	// AdvanceToPeriod rolls the index forward by p, synthesizing daily
	// fixings between the old and new reference dates from the curve.
	AdvanceToPeriod(p utils.Period) (InterestRateIndex, error)
}

// fixingTable is the shared fixing storage for index implementations.
type fixingTable struct {
	fixings map[time.Time]float64
}

func newFixingTable() fixingTable {
	return fixingTable{fixings: make(map[time.Time]float64)}
}

func (t *fixingTable) addFixing(d time.Time, rate float64) {
	t.fixings[d] = rate
}

func (t *fixingTable) fixing(d time.Time) (float64, error) {
	r, ok := t.fixings[d]
	if !ok {
		return 0, NotFoundError{What: fmt.Sprintf("fixing on %s", d.Format("2006-01-02"))}
	}
	return r, nil
}

func (t *fixingTable) sortedFixingDates() []time.Time {
	dates := make([]time.Time, 0, len(t.fixings))
	for d := range t.fixings {
		dates = append(dates, d)
	}
	utils.SortDates(dates)
	return dates
}

func (t *fixingTable) cloneFixings() map[time.Time]float64 {
	out := make(map[time.Time]float64, len(t.fixings))
	for d, r := range t.fixings {
		out[d] = r
	}
	return out
}

// fillMissingFixings interpolates rates for the calendar days between the
// first and last known fixing dates that have no recorded value. Each gap
// day interpolates between its adjacent known fixings.
func (t *fixingTable) fillMissingFixings(interp curves.Interpolator) error {
	dates := t.sortedFixingDates()
	if len(dates) < 2 {
		return nil
	}
	if interp == nil {
		interp = curves.LinearInterpolator{}
	}

	for d := dates[0]; d.Before(dates[len(dates)-1]); d = d.AddDate(0, 0, 1) {
		if _, ok := t.fixings[d]; ok {
			continue
		}
		lo, hi := utils.AdjacentDates(d, dates)
		v, err := interp.Interpolate(utils.Days(lo, d),
			[]float64{0, utils.Days(lo, hi)},
			[]float64{t.fixings[lo], t.fixings[hi]})
		if err != nil {
			return fmt.Errorf("fillMissingFixings: %w", err)
		}
		t.fixings[d] = v
	}
	return nil
}

// compoundedFactor accrues the daily fixings over [start, end) into a
// growth factor, one simple accrual per calendar day under dc.
func (t *fixingTable) compoundedFactor(start, end time.Time, dc utils.DayCounter) (float64, error) {
	factor := 1.0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		r, err := t.fixing(d)
		if err != nil {
			return 0, err
		}
		factor *= 1.0 + r*dc.YearFraction(d, d.AddDate(0, 0, 1))
	}
	return factor, nil
}
