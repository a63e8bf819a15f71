package curves

import (
	"fmt"
	"time"

	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/utils"
)

// DiscountCurve is a term structure built from explicit discount-factor
// nodes, interpolated on a year-fraction axis. The curve time axis uses
// ACT/365F regardless of leg conventions, matching market practice for
// discount-curve interpolation.
type DiscountCurve struct {
	refDate time.Time
	dates   []time.Time
	times   []float64
	dfs     []float64
	dayc    utils.DayCounter
	interp  Interpolator
}

// NewDiscountCurve builds a curve from discount-factor nodes. A node at the
// reference date with DF 1.0 is inserted when absent. Nodes before the
// reference date are rejected.
func NewDiscountCurve(refDate time.Time, nodes map[time.Time]float64, interp Interpolator) (*DiscountCurve, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("NewDiscountCurve: no nodes provided")
	}
	if interp == nil {
		interp = LogLinearInterpolator{}
	}

	dates := make([]time.Time, 0, len(nodes)+1)
	for d := range nodes {
		if d.Before(refDate) {
			return nil, fmt.Errorf("NewDiscountCurve: node %s precedes reference date %s",
				d.Format("2006-01-02"), refDate.Format("2006-01-02"))
		}
		dates = append(dates, d)
	}
	if _, ok := nodes[refDate]; !ok {
		dates = append(dates, refDate)
	}
	utils.SortDates(dates)

	c := &DiscountCurve{
		refDate: refDate,
		dates:   dates,
		times:   make([]float64, len(dates)),
		dfs:     make([]float64, len(dates)),
		dayc:    utils.NewDayCounter(utils.Actual365Fixed),
		interp:  interp,
	}
	for i, d := range dates {
		c.times[i] = c.dayc.YearFraction(refDate, d)
		if d.Equal(refDate) {
			c.dfs[i] = 1.0
			continue
		}
		df := nodes[d]
		if df <= 0 {
			return nil, fmt.Errorf("NewDiscountCurve: non-positive DF %v at %s", df, d.Format("2006-01-02"))
		}
		c.dfs[i] = df
	}
	return c, nil
}

func (c *DiscountCurve) ReferenceDate() time.Time {
	return c.refDate
}

func (c *DiscountCurve) DiscountFactor(d time.Time) (float64, error) {
	if d.Before(c.refDate) {
		return 0, fmt.Errorf("DiscountCurve.DiscountFactor: date %s precedes reference date %s",
			d.Format("2006-01-02"), c.refDate.Format("2006-01-02"))
	}
	df, err := c.interp.Interpolate(c.dayc.YearFraction(c.refDate, d), c.times, c.dfs)
	if err != nil {
		return 0, fmt.Errorf("DiscountCurve.DiscountFactor: %w", err)
	}
	return df, nil
}

func (c *DiscountCurve) ForwardRate(start, end time.Time, def rates.Definition) (float64, error) {
	return ForwardRateBetween(c, start, end, def)
}

// AdvanceToPeriod rolls the curve forward by p. The new curve keeps the
// surviving node dates with discount factors rescaled by 1/DF(newRef), so
// forward rates between dates after the new reference date are unchanged.
func (c *DiscountCurve) AdvanceToPeriod(p utils.Period) (YieldTermStructure, error) {
	if p.IsNegative() {
		return nil, fmt.Errorf("DiscountCurve.AdvanceToPeriod: negative period %s", p)
	}
	newRef := utils.AddPeriod(c.refDate, p)
	base, err := c.DiscountFactor(newRef)
	if err != nil {
		return nil, fmt.Errorf("DiscountCurve.AdvanceToPeriod: %w", err)
	}

	nodes := make(map[time.Time]float64, len(c.dates))
	nodes[newRef] = 1.0
	for i, d := range c.dates {
		if d.After(newRef) {
			nodes[d] = c.dfs[i] / base
		}
	}
	if len(nodes) == 1 {
		// Rolled past the last node: keep a flat curve at the boundary DF.
		nodes[utils.AddPeriod(newRef, utils.NewPeriod(1, utils.UnitYears))] = 1.0
	}
	return NewDiscountCurve(newRef, nodes, c.interp)
}
