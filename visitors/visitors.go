// Package visitors holds the analytics that walk an instrument's
// cashflows: indexing and fixing against a market snapshot, present
// value, duration, aggregation, accruals and the par and z-spread
// solvers.
package visitors

import (
	"fmt"

	"github.com/meenmo/rateslib/cashflows"
	"github.com/meenmo/rateslib/market"
)

// dataFor fetches the market data entry a cashflow was indexed against.
func dataFor(cf cashflows.Cashflow, data []market.Data) (market.Data, error) {
	id, err := cf.ID()
	if err != nil {
		return market.Data{}, err
	}
	if id < 0 || id >= len(data) {
		return market.Data{}, fmt.Errorf("market data has no entry %d", id)
	}
	return data[id], nil
}

// presentValue discounts one cashflow into the snapshot's local currency:
// amount, signed by side, times the discount factor, divided by the
// exchange rate quoted as local per cashflow currency unit.
func presentValue(cf cashflows.Cashflow, d market.Data) (float64, error) {
	if !d.HasDf {
		return 0, market.ErrNoDiscountRequest
	}
	if !d.HasFx {
		return 0, market.ErrNoFxRequest
	}
	amount, err := cf.Amount()
	if err != nil {
		return 0, err
	}
	return amount * cf.Side().Sign() * d.Df / d.Fx, nil
}

// includeCashflow applies the evaluation-date cut: payments before the
// reference date never contribute, payments on it only when asked for.
func includeCashflow(cf cashflows.Cashflow, d market.Data, includeToday bool) bool {
	if cf.IsExpired(d.ReferenceDate) {
		return false
	}
	if cf.PaymentDate().Equal(d.ReferenceDate) && !includeToday {
		return false
	}
	return true
}
