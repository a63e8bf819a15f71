package rates_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/utils"
)

func act360() utils.DayCounter {
	return utils.NewDayCounter(utils.Actual360)
}

func TestCompoundFactorFromYF(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		comp rates.Compounding
		freq utils.Frequency
		rate float64
		t    float64
		want float64
	}{
		{"simple", rates.Simple, utils.Annual, 0.05, 2.0, 1.10},
		{"compounded annual", rates.Compounded, utils.Annual, 0.05, 2.0, 1.1025},
		{"compounded semiannual", rates.Compounded, utils.Semiannual, 0.06, 1.0, 1.0609},
		{"continuous", rates.Continuous, utils.Annual, 0.05, 2.0, math.Exp(0.1)},
		{"simple then compounded before switch", rates.SimpleThenCompounded, utils.Semiannual, 0.06, 0.25, 1.015},
		{"simple then compounded after switch", rates.SimpleThenCompounded, utils.Semiannual, 0.06, 1.0, 1.0609},
		{"compounded then simple after switch", rates.CompoundedThenSimple, utils.Semiannual, 0.06, 1.0, 1.06},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := rates.New(tc.rate, rates.NewDefinition(act360(), tc.comp, tc.freq))
			if got := r.CompoundFactorFromYF(tc.t); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("CompoundFactorFromYF mismatch: got %.12f want %.12f", got, tc.want)
			}
		})
	}
}

func TestCompoundFactorAtZeroIsOne(t *testing.T) {
	t.Parallel()

	for _, comp := range []rates.Compounding{
		rates.Simple, rates.Compounded, rates.Continuous,
		rates.SimpleThenCompounded, rates.CompoundedThenSimple,
	} {
		r := rates.New(0.07, rates.NewDefinition(act360(), comp, utils.Quarterly))
		if got := r.CompoundFactorFromYF(0); math.Abs(got-1.0) > 1e-15 {
			t.Fatalf("%v: CompoundFactorFromYF(0) mismatch: got %.15f", comp, got)
		}
	}
}

func TestDiscountFactorIsReciprocal(t *testing.T) {
	t.Parallel()

	r := rates.New(0.04, rates.DefaultDefinition())
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := r.CompoundFactor(start, end) * r.DiscountFactor(start, end); math.Abs(got-1.0) > 1e-15 {
		t.Fatalf("cf * df mismatch: got %.15f", got)
	}
}

func TestImpliedRate_RoundTrip(t *testing.T) {
	t.Parallel()

	def := rates.NewDefinition(act360(), rates.Compounded, utils.Semiannual)
	orig := rates.New(0.0375, def)
	tau := 1.75

	implied, err := rates.ImpliedRate(orig.CompoundFactorFromYF(tau), def, tau)
	if err != nil {
		t.Fatalf("ImpliedRate error: %v", err)
	}
	if math.Abs(implied.Rate-orig.Rate) > 1e-12 {
		t.Fatalf("round trip mismatch: got %.12f want %.12f", implied.Rate, orig.Rate)
	}
}

func TestImpliedRate_Errors(t *testing.T) {
	t.Parallel()

	def := rates.DefaultDefinition()

	if _, err := rates.ImpliedRate(0.0, def, 1.0); !errors.Is(err, rates.ErrPositiveCompoundFactor) {
		t.Fatalf("expected ErrPositiveCompoundFactor, got %v", err)
	}
	if _, err := rates.ImpliedRate(-0.5, def, 1.0); !errors.Is(err, rates.ErrPositiveCompoundFactor) {
		t.Fatalf("expected ErrPositiveCompoundFactor, got %v", err)
	}
	if _, err := rates.ImpliedRate(1.05, def, 0.0); !errors.Is(err, rates.ErrPositiveTime) {
		t.Fatalf("expected ErrPositiveTime, got %v", err)
	}
	if _, err := rates.ImpliedRate(1.0, def, -1.0); !errors.Is(err, rates.ErrNonNegativeTime) {
		t.Fatalf("expected ErrNonNegativeTime, got %v", err)
	}

	// A unit factor implies a zero rate for any non-negative time.
	r, err := rates.ImpliedRate(1.0, def, 0.0)
	if err != nil {
		t.Fatalf("ImpliedRate error: %v", err)
	}
	if r.Rate != 0 {
		t.Fatalf("unit factor rate mismatch: got %v", r.Rate)
	}
}

func TestWithRateKeepsDefinition(t *testing.T) {
	t.Parallel()

	def := rates.NewDefinition(act360(), rates.Continuous, utils.Annual)
	r := rates.New(0.05, def).WithRate(0.07)
	if r.Rate != 0.07 {
		t.Fatalf("Rate mismatch: got %v", r.Rate)
	}
	if r.Def != def {
		t.Fatalf("definition changed: got %+v", r.Def)
	}
}
