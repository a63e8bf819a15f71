package visitors

import (
	"fmt"

	"github.com/meenmo/rateslib/cashflows"
	"github.com/meenmo/rateslib/instruments"
	"github.com/meenmo/rateslib/market"
)

// FixingVisitor pushes generated forward rates back into floating
// coupons, turning them into priced cashflows. Non-floating cashflows
// pass through untouched.
type FixingVisitor struct {
	data []market.Data
}

func NewFixingVisitor(data []market.Data) *FixingVisitor {
	return &FixingVisitor{data: data}
}

func (v *FixingVisitor) Visit(inst instruments.Instrument) error {
	if err := fixCashflows(inst.Cashflows(), v.data); err != nil {
		return fmt.Errorf("FixingVisitor.Visit: %w", err)
	}
	return nil
}

func fixCashflows(cfs []cashflows.Cashflow, data []market.Data) error {
	for _, cf := range cfs {
		coupon, ok := cf.(*cashflows.FloatingRateCoupon)
		if !ok {
			continue
		}
		d, err := dataFor(coupon, data)
		if err != nil {
			return err
		}
		if !d.HasFwd {
			return market.ErrNoForwardRateRequest
		}
		coupon.SetFixingRate(d.Fwd)
	}
	return nil
}
