package visitors

import (
	"fmt"
	"time"

	"github.com/meenmo/rateslib/cashflows"
	"github.com/meenmo/rateslib/instruments"
)

// AccruedAmountConstVisitor builds the day-by-day interest accrual over a
// horizon: for each date d in [startDate, endDate) it records the
// interest earned between d and d+1 across all visited coupons. Floating
// coupons must be fixed first.
type AccruedAmountConstVisitor struct {
	startDate time.Time
	endDate   time.Time
	accrued   map[time.Time]float64
}

func NewAccruedAmountConstVisitor(startDate, endDate time.Time) (*AccruedAmountConstVisitor, error) {
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("NewAccruedAmountConstVisitor: end %s not after start %s",
			endDate.Format("2006-01-02"), startDate.Format("2006-01-02"))
	}
	return &AccruedAmountConstVisitor{
		startDate: startDate,
		endDate:   endDate,
		accrued:   make(map[time.Time]float64),
	}, nil
}

func (v *AccruedAmountConstVisitor) Visit(inst instruments.Instrument) error {
	for _, cf := range inst.Cashflows() {
		coupon, ok := cf.(cashflows.Coupon)
		if !ok {
			continue
		}
		// Clip the walk to the coupon's own accrual window.
		from, to := v.startDate, v.endDate
		if coupon.AccrualStart().After(from) {
			from = coupon.AccrualStart()
		}
		if coupon.AccrualEnd().Before(to) {
			to = coupon.AccrualEnd()
		}
		for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
			a, err := coupon.AccruedAmount(d, d.AddDate(0, 0, 1))
			if err != nil {
				return fmt.Errorf("AccruedAmountConstVisitor.Visit: %w", err)
			}
			v.accrued[d] += a * coupon.Side().Sign()
		}
	}
	return nil
}

// Accrued returns the per-day increments.
func (v *AccruedAmountConstVisitor) Accrued() map[time.Time]float64 {
	return v.accrued
}

// AccruedAt returns the increment recorded for one day.
func (v *AccruedAmountConstVisitor) AccruedAt(d time.Time) float64 {
	return v.accrued[d]
}

// TotalAccrued sums the increments over the whole horizon.
func (v *AccruedAmountConstVisitor) TotalAccrued() float64 {
	total := 0.0
	for _, a := range v.accrued {
		total += a
	}
	return total
}
