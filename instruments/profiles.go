package instruments

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/meenmo/rateslib/cashflows"
	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/solvers"
)

// principalTolerance bounds the redemption/disbursement mismatch accepted
// by the custom profile.
const principalTolerance = 1e-6

// bulletRedemptions repays everything in the last period.
func bulletRedemptions(n int, notional float64) []float64 {
	out := make([]float64, n)
	out[n-1] = notional
	return out
}

// equalRedemptions splits the notional evenly across periods.
func equalRedemptions(n int, notional float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = notional / float64(n)
	}
	return out
}

// equalPaymentRedemptions solves the constant payment level so that
// interest + redemption is the same every period and the loan fully
// amortizes, then returns the per-period redemptions. Interest above the
// payment level yields a negative redemption (the balance grows).
func equalPaymentRedemptions(schedule []time.Time, rate rates.InterestRate, notional float64) ([]float64, error) {
	n := len(schedule) - 1
	replay := func(payment float64) (redemptions []float64, residual float64) {
		redemptions = make([]float64, n)
		outstanding := 1.0
		for i := 0; i < n; i++ {
			interest := outstanding * (rate.CompoundFactor(schedule[i], schedule[i+1]) - 1.0)
			redemptions[i] = payment - interest
			outstanding -= redemptions[i]
		}
		return redemptions, outstanding
	}
	payment, err := solvers.Brent(func(p float64) (float64, error) {
		_, residual := replay(p)
		return residual, nil
	}, -0.2, 1.5, solvers.DefaultConfig)
	if err != nil {
		return nil, fmt.Errorf("equalPaymentRedemptions: %w", err)
	}
	redemptions, _ := replay(payment)
	for i := range redemptions {
		redemptions[i] *= notional
	}
	return redemptions, nil
}

// outstandingNotionals returns the balance at the start of each period.
func outstandingNotionals(notional float64, redemptions []float64) []float64 {
	out := make([]float64, len(redemptions))
	outstanding := notional
	for i, r := range redemptions {
		out[i] = outstanding
		outstanding -= r
	}
	return out
}

// profileRedemptions dispatches on the structure. Zero and Bullet differ
// only in how the schedule was built.
func profileRedemptions(structure Structure, schedule []time.Time, rate rates.InterestRate, notional float64) ([]float64, error) {
	n := len(schedule) - 1
	switch structure {
	case Bullet, Zero:
		return bulletRedemptions(n, notional), nil
	case EqualRedemptions:
		return equalRedemptions(n, notional), nil
	case EqualPayments:
		return equalPaymentRedemptions(schedule, rate, notional)
	default:
		return nil, NotImplementedError{What: fmt.Sprintf("structure %s", structure)}
	}
}

// appendPrincipal emits the principal movement for one period: positive
// redemptions repay, negative ones extend the balance and are booked as
// disbursements on the opposite side.
func appendPrincipal(cfs []cashflows.Cashflow, amount float64, date time.Time, currency market.Currency, side cashflows.Side) []cashflows.Cashflow {
	if amount == 0 {
		return cfs
	}
	if amount < 0 {
		return append(cfs, cashflows.NewDisbursement(-amount, date, currency, side.Inverse()))
	}
	return append(cfs, cashflows.NewRedemption(amount, date, currency, side))
}

// couponPeriod is one accrual interval of the custom profile with the
// balance outstanding over it.
type couponPeriod struct {
	start    time.Time
	end      time.Time
	notional float64
}

// customTimeline walks the user-supplied principal events in date order
// and derives the accrual periods between them. extraCoupons insert coupon
// boundaries without moving principal.
// sortedEventDates returns a principal event map's dates in ascending
// order, so construction from custom profiles is reproducible.
func sortedEventDates(events map[time.Time]float64) []time.Time {
	dates := make([]time.Time, 0, len(events))
	for d := range events {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func customTimeline(disbursements, redemptions map[time.Time]float64, extraCoupons []time.Time) ([]couponPeriod, error) {
	var totalDisbursed, totalRedeemed float64
	for _, a := range disbursements {
		totalDisbursed += math.Abs(a)
	}
	for _, a := range redemptions {
		totalRedeemed += math.Abs(a)
	}
	if math.Abs(totalDisbursed-totalRedeemed) > principalTolerance {
		return nil, fmt.Errorf("customTimeline: disbursements %.8f and redemptions %.8f do not close", totalDisbursed, totalRedeemed)
	}
	if len(disbursements) == 0 {
		return nil, fmt.Errorf("customTimeline: no disbursements")
	}

	seen := make(map[time.Time]bool)
	var dates []time.Time
	add := func(d time.Time) {
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	for d := range disbursements {
		add(d)
	}
	for d := range redemptions {
		add(d)
	}
	for _, d := range extraCoupons {
		add(d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var periods []couponPeriod
	outstanding := 0.0
	for i, d := range dates {
		outstanding += math.Abs(disbursements[d])
		outstanding -= math.Abs(redemptions[d])
		if outstanding < -principalTolerance {
			return nil, fmt.Errorf("customTimeline: balance negative at %s", d.Format("2006-01-02"))
		}
		if i+1 < len(dates) && outstanding > principalTolerance {
			periods = append(periods, couponPeriod{start: d, end: dates[i+1], notional: outstanding})
		}
	}
	return periods, nil
}
