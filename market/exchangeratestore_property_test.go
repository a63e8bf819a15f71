package market_test

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/meenmo/rateslib/market"
)

// chainCurrencies is a fixed conversion chain; properties draw the edge
// rates and check graph queries against the closed-form path product.
var chainCurrencies = []market.Currency{market.EUR, market.USD, market.CLP, market.KRW}

func chainStore(t *testing.T, edgeRates []float64) *market.ExchangeRateStore {
	t.Helper()
	store := market.NewExchangeRateStore()
	for i, r := range edgeRates {
		if err := store.AddRate(chainCurrencies[i], chainCurrencies[i+1], r); err != nil {
			t.Fatalf("AddRate error: %v", err)
		}
	}
	return store
}

func TestProperty_ExchangeRateRoundTrip(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("Rate(A,B)*Rate(B,A) is 1 across the chain", prop.ForAll(
		func(r1, r2, r3 float64) bool {
			store := chainStore(t, []float64{r1, r2, r3})
			fwd, err := store.Rate(market.EUR, market.KRW)
			if err != nil {
				t.Logf("forward rate error: %v", err)
				return false
			}
			back, err := store.Rate(market.KRW, market.EUR)
			if err != nil {
				t.Logf("backward rate error: %v", err)
				return false
			}
			if math.Abs(fwd*back-1.0) > 1e-9 {
				t.Logf("round trip drifted: fwd %v back %v", fwd, back)
				return false
			}
			return true
		},
		gen.Float64Range(0.001, 2000),
		gen.Float64Range(0.001, 2000),
		gen.Float64Range(0.001, 2000),
	))

	properties.Property("triangulated rate equals the path product", prop.ForAll(
		func(r1, r2, r3 float64) bool {
			store := chainStore(t, []float64{r1, r2, r3})
			got, err := store.Rate(market.EUR, market.KRW)
			if err != nil {
				t.Logf("rate error: %v", err)
				return false
			}
			want := r1 * r2 * r3
			if math.Abs(got/want-1.0) > 1e-12 {
				t.Logf("path product mismatch: got %v want %v", got, want)
				return false
			}
			return true
		},
		gen.Float64Range(0.001, 2000),
		gen.Float64Range(0.001, 2000),
		gen.Float64Range(0.001, 2000),
	))

	properties.TestingRun(t)
}
