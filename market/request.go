package market

import (
	"errors"
	"time"

	"github.com/meenmo/rateslib/rates"
)

var (
	// ErrNoRegistryID is returned when a cashflow is evaluated before the
	// indexing visitor assigned it an id.
	ErrNoRegistryID = errors.New("cashflow has no registry id")
	// ErrNoDiscountCurveID is returned when a market request is built from a
	// cashflow with no discount curve configured.
	ErrNoDiscountCurveID = errors.New("no discount curve id set")
	// ErrNoForecastCurveID is returned when a floating coupon has no
	// forecast curve configured.
	ErrNoForecastCurveID = errors.New("no forecast curve id set")
	// ErrNoDiscountRequest is returned when market data lacks the discount
	// factor an analytic needs.
	ErrNoDiscountRequest = errors.New("market data has no discount factor")
	// ErrNoForwardRateRequest is returned when market data lacks the forward
	// rate a floating coupon needs.
	ErrNoForwardRateRequest = errors.New("market data has no forward rate")
	// ErrNoFxRequest is returned when market data lacks the exchange rate an
	// analytic needs.
	ErrNoFxRequest = errors.New("market data has no exchange rate")
)

// DiscountFactorRequest asks for the discount factor of curve CurveID at
// Date.
type DiscountFactorRequest struct {
	CurveID int
	Date    time.Time
}

// ForwardRateRequest asks for the rate of index CurveID over the accrual
// window, quoted under Def. FixingDate is the date the rate is determined.
type ForwardRateRequest struct {
	CurveID    int
	FixingDate time.Time
	StartDate  time.Time
	EndDate    time.Time
	Def        rates.Definition
}

// ExchangeRateRequest asks for the conversion between Currency and the
// store's local currency.
type ExchangeRateRequest struct {
	Currency Currency
}

// Request is the bundle of market data a single cashflow needs. The id is
// assigned by the indexing visitor and doubles as the position of the
// matching Data in the generated slice.
type Request struct {
	ID       int
	Discount *DiscountFactorRequest
	Forward  *ForwardRateRequest
	Fx       *ExchangeRateRequest
}

// Data is the resolved counterpart of a Request. data[i] answers
// requests[i]; the Has flags mirror which sub-requests were present.
type Data struct {
	ID            int
	ReferenceDate time.Time
	Df            float64
	Fwd           float64
	Fx            float64
	HasDf         bool
	HasFwd        bool
	HasFx         bool
}
