package visitors

import (
	"fmt"
	"sync"
	"time"

	"github.com/meenmo/rateslib/cashflows"
	"github.com/meenmo/rateslib/instruments"
	"github.com/meenmo/rateslib/market"
)

// CashflowsAggregatorConstVisitor totals undiscounted signed amounts by
// payment date, split into interest, redemptions and disbursements. It is
// safe for concurrent Visit calls, so a portfolio can be aggregated from
// several goroutines into one visitor.
type CashflowsAggregatorConstVisitor struct {
	mu            sync.Mutex
	interest      map[time.Time]float64
	redemptions   map[time.Time]float64
	disbursements map[time.Time]float64

	checkCurrency bool
	currency      market.Currency
}

func NewCashflowsAggregatorConstVisitor() *CashflowsAggregatorConstVisitor {
	return &CashflowsAggregatorConstVisitor{
		interest:      make(map[time.Time]float64),
		redemptions:   make(map[time.Time]float64),
		disbursements: make(map[time.Time]float64),
	}
}

// WithCurrency rejects cashflows in any other currency, keeping the
// aggregate in a single unit.
func (v *CashflowsAggregatorConstVisitor) WithCurrency(c market.Currency) *CashflowsAggregatorConstVisitor {
	v.checkCurrency = true
	v.currency = c
	return v
}

func (v *CashflowsAggregatorConstVisitor) Visit(inst instruments.Instrument) error {
	for _, cf := range inst.Cashflows() {
		if v.checkCurrency && cf.Currency() != v.currency {
			return fmt.Errorf("CashflowsAggregatorConstVisitor.Visit: cashflow in %s, aggregating %s",
				cf.Currency().Code(), v.currency.Code())
		}
		amount, err := cf.Amount()
		if err != nil {
			return fmt.Errorf("CashflowsAggregatorConstVisitor.Visit: %w", err)
		}
		signed := amount * cf.Side().Sign()

		v.mu.Lock()
		switch cf.Type() {
		case cashflows.TypeFixedRateCoupon, cashflows.TypeFloatingRateCoupon:
			v.interest[cf.PaymentDate()] += signed
		case cashflows.TypeRedemption:
			v.redemptions[cf.PaymentDate()] += signed
		case cashflows.TypeDisbursement:
			v.disbursements[cf.PaymentDate()] += signed
		}
		v.mu.Unlock()
	}
	return nil
}

func (v *CashflowsAggregatorConstVisitor) Interest() map[time.Time]float64 {
	return v.interest
}

func (v *CashflowsAggregatorConstVisitor) Redemptions() map[time.Time]float64 {
	return v.redemptions
}

func (v *CashflowsAggregatorConstVisitor) Disbursements() map[time.Time]float64 {
	return v.disbursements
}
