// Package cashflows models the dated payments instruments are made of:
// principal movements (disbursements, redemptions) and interest coupons
// (fixed, floating), together with the market requests that bind each
// cashflow to a snapshot.
package cashflows

import (
	"fmt"
	"time"

	"github.com/meenmo/rateslib/market"
)

// Side is the direction of a cashflow from the holder's perspective.
type Side int

const (
	Receive Side = iota
	Pay
)

// Sign is +1 for Receive, -1 for Pay.
func (s Side) Sign() float64 {
	if s == Pay {
		return -1.0
	}
	return 1.0
}

// Inverse flips the side.
func (s Side) Inverse() Side {
	if s == Pay {
		return Receive
	}
	return Pay
}

func (s Side) String() string {
	if s == Pay {
		return "Pay"
	}
	return "Receive"
}

// Type tags the cashflow variants.
type Type int

const (
	TypeDisbursement Type = iota
	TypeRedemption
	TypeFixedRateCoupon
	TypeFloatingRateCoupon
)

func (t Type) String() string {
	switch t {
	case TypeDisbursement:
		return "Disbursement"
	case TypeRedemption:
		return "Redemption"
	case TypeFixedRateCoupon:
		return "FixedRateCoupon"
	case TypeFloatingRateCoupon:
		return "FloatingRateCoupon"
	default:
		return "Unknown"
	}
}

// ValueNotSetError reports a value read before it was set: a builder field,
// a simple cashflow amount, a floating coupon's fixing.
type ValueNotSetError struct {
	Field string
}

func (e ValueNotSetError) Error() string {
	return fmt.Sprintf("value not set: %s", e.Field)
}

// Cashflow is the closed set of payment variants. The concrete types are
// *Disbursement, *Redemption, *FixedRateCoupon and *FloatingRateCoupon;
// analytics dispatch on Type().
type Cashflow interface {
	Type() Type
	Currency() market.Currency
	Side() Side
	PaymentDate() time.Time

	// Amount is the undiscounted payment before the side sign is applied.
	// Floating coupons fail with ValueNotSet("fixingRate") before fixing.
	Amount() (float64, error)

	// IsExpired reports whether the payment date precedes asOf.
	IsExpired(asOf time.Time) bool

	// MarketRequest declares the market data this cashflow needs. The
	// cashflow must have been indexed (SetID) first.
	MarketRequest() (market.Request, error)

	// ID is the dense position assigned by the indexing visitor.
	ID() (int, error)
	SetID(id int)

	DiscountCurveID() (int, error)
	SetDiscountCurveID(id int)

	// Clone returns an independent copy preserving ids and curve bindings,
	// so solvers can mutate rates without touching the original.
	Clone() Cashflow
}

// Coupon is the accrual contract shared by fixed and floating coupons.
type Coupon interface {
	Cashflow
	Notional() float64
	AccrualStart() time.Time
	AccrualEnd() time.Time

	// AccruedAmount is the interest earned over the intersection of
	// [d1, d2] with the accrual window; 0 when disjoint.
	AccruedAmount(d1, d2 time.Time) (float64, error)
}

// base carries the fields every variant shares.
type base struct {
	currency        market.Currency
	side            Side
	paymentDate     time.Time
	discountCurveID int
	hasDiscount     bool
	id              int
	hasID           bool
}

func (b *base) Currency() market.Currency { return b.currency }
func (b *base) Side() Side                { return b.side }
func (b *base) PaymentDate() time.Time    { return b.paymentDate }

func (b *base) IsExpired(asOf time.Time) bool {
	return b.paymentDate.Before(asOf)
}

func (b *base) ID() (int, error) {
	if !b.hasID {
		return 0, market.ErrNoRegistryID
	}
	return b.id, nil
}

func (b *base) SetID(id int) {
	b.id = id
	b.hasID = true
}

func (b *base) DiscountCurveID() (int, error) {
	if !b.hasDiscount {
		return 0, market.ErrNoDiscountCurveID
	}
	return b.discountCurveID, nil
}

func (b *base) SetDiscountCurveID(id int) {
	b.discountCurveID = id
	b.hasDiscount = true
}

// baseRequest assembles the discount and fx legs every variant requests.
func (b *base) baseRequest() (market.Request, error) {
	if !b.hasID {
		return market.Request{}, market.ErrNoRegistryID
	}
	if !b.hasDiscount {
		return market.Request{}, market.ErrNoDiscountCurveID
	}
	return market.Request{
		ID:       b.id,
		Discount: &market.DiscountFactorRequest{CurveID: b.discountCurveID, Date: b.paymentDate},
		Fx:       &market.ExchangeRateRequest{Currency: b.currency},
	}, nil
}
