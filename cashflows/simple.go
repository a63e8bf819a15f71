package cashflows

import (
	"time"

	"github.com/meenmo/rateslib/market"
)

// simpleCashflow is the shared body of Disbursement and Redemption: a
// user-supplied amount on a payment date.
type simpleCashflow struct {
	base
	amount    float64
	hasAmount bool
}

func (s *simpleCashflow) Amount() (float64, error) {
	if !s.hasAmount {
		return 0, ValueNotSetError{Field: "amount"}
	}
	return s.amount, nil
}

func (s *simpleCashflow) SetAmount(a float64) {
	s.amount = a
	s.hasAmount = true
}

func (s *simpleCashflow) MarketRequest() (market.Request, error) {
	return s.baseRequest()
}

// Disbursement is a principal outflow into the deal (the lender pays the
// notional out).
type Disbursement struct {
	simpleCashflow
}

// NewDisbursement builds a disbursement of amount on paymentDate.
func NewDisbursement(amount float64, paymentDate time.Time, currency market.Currency, side Side) *Disbursement {
	d := &Disbursement{}
	d.currency = currency
	d.side = side
	d.paymentDate = paymentDate
	d.SetAmount(amount)
	return d
}

func (d *Disbursement) Type() Type { return TypeDisbursement }

func (d *Disbursement) Clone() Cashflow {
	c := *d
	return &c
}

// Redemption is a principal repayment.
type Redemption struct {
	simpleCashflow
}

// NewRedemption builds a redemption of amount on paymentDate.
func NewRedemption(amount float64, paymentDate time.Time, currency market.Currency, side Side) *Redemption {
	r := &Redemption{}
	r.currency = currency
	r.side = side
	r.paymentDate = paymentDate
	r.SetAmount(amount)
	return r
}

func (r *Redemption) Type() Type { return TypeRedemption }

func (r *Redemption) Clone() Cashflow {
	c := *r
	return &c
}
