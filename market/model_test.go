package market_test

import (
	"math"
	"testing"

	"github.com/meenmo/rateslib/market"
)

func TestSpotModel_GenerateIsPositional(t *testing.T) {
	t.Parallel()

	ref := date(2025, 1, 1)
	store := market.NewStore(ref, market.USD)
	curveID := store.AddIndex(flatIndex("USD-RF", ref, 0.05))
	if err := store.AddExchangeRate(market.USD, market.CLP, 800); err != nil {
		t.Fatalf("AddExchangeRate error: %v", err)
	}

	requests := []market.Request{
		{ID: 0, Discount: &market.DiscountFactorRequest{CurveID: curveID, Date: date(2026, 1, 1)}},
		{ID: 1, Fx: &market.ExchangeRateRequest{Currency: market.CLP}},
		{ID: 2, Discount: &market.DiscountFactorRequest{CurveID: curveID, Date: date(2025, 7, 1)},
			Fx: &market.ExchangeRateRequest{Currency: market.USD}},
	}

	data, err := market.NewSpotModel(store).Generate(requests)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(data) != len(requests) {
		t.Fatalf("data length mismatch: got %d want %d", len(data), len(requests))
	}

	if !data[0].HasDf || data[0].HasFx || data[0].HasFwd {
		t.Fatalf("flags mismatch for request 0: %+v", data[0])
	}
	if math.Abs(data[0].Df-math.Exp(-0.05)) > 1e-12 {
		t.Fatalf("DF mismatch: got %.12f want %.12f", data[0].Df, math.Exp(-0.05))
	}

	// FX is quoted as cashflow currency per unit of local currency.
	if !data[1].HasFx {
		t.Fatalf("flags mismatch for request 1: %+v", data[1])
	}
	if math.Abs(data[1].Fx-800) > 1e-12 {
		t.Fatalf("FX mismatch: got %v want 800", data[1].Fx)
	}

	if !data[2].HasDf || !data[2].HasFx {
		t.Fatalf("flags mismatch for request 2: %+v", data[2])
	}
	if data[2].Fx != 1.0 {
		t.Fatalf("local-currency FX mismatch: got %v", data[2].Fx)
	}
	if !data[2].ReferenceDate.Equal(ref) {
		t.Fatalf("reference date mismatch: got %s", data[2].ReferenceDate.Format("2006-01-02"))
	}
}

func TestSpotModel_ExpiredDiscountFactorIsZero(t *testing.T) {
	t.Parallel()

	ref := date(2025, 6, 1)
	store := market.NewStore(ref, market.USD)
	curveID := store.AddIndex(flatIndex("USD-RF", ref, 0.05))

	data, err := market.NewSpotModel(store).Generate([]market.Request{
		{ID: 0, Discount: &market.DiscountFactorRequest{CurveID: curveID, Date: date(2025, 1, 1)}},
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if !data[0].HasDf || data[0].Df != 0.0 {
		t.Fatalf("expired DF mismatch: %+v", data[0])
	}
}

func TestSpotModel_ForwardRateBlending(t *testing.T) {
	t.Parallel()

	ref := date(2025, 1, 10)
	store := market.NewStore(ref, market.USD)
	idx := flatIndex("USD-LIBOR", ref, 0.05)
	idx.AddFixing(date(2025, 1, 2), 0.042)
	curveID := store.AddIndex(idx)

	// A fixing date in the past resolves to the recorded fixing, a future
	// window resolves to the curve forward.
	data, err := market.NewSpotModel(store).Generate([]market.Request{
		{ID: 0, Forward: &market.ForwardRateRequest{
			CurveID:    curveID,
			FixingDate: date(2025, 1, 2),
			StartDate:  date(2025, 1, 2),
			EndDate:    date(2025, 7, 2),
			Def:        contDef(),
		}},
		{ID: 1, Forward: &market.ForwardRateRequest{
			CurveID:    curveID,
			FixingDate: date(2025, 3, 1),
			StartDate:  date(2025, 3, 1),
			EndDate:    date(2025, 9, 1),
			Def:        contDef(),
		}},
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if !data[0].HasFwd || math.Abs(data[0].Fwd-0.042) > 1e-12 {
		t.Fatalf("past fixing mismatch: %+v", data[0])
	}
	if !data[1].HasFwd || math.Abs(data[1].Fwd-0.05) > 1e-12 {
		t.Fatalf("future forward mismatch: %+v", data[1])
	}
}

func TestSpotModel_UnknownCurveFails(t *testing.T) {
	t.Parallel()

	store := market.NewStore(date(2025, 1, 1), market.USD)
	_, err := market.NewSpotModel(store).Generate([]market.Request{
		{ID: 3, Discount: &market.DiscountFactorRequest{CurveID: 9, Date: date(2026, 1, 1)}},
	})
	if err == nil {
		t.Fatalf("expected error for unknown curve id")
	}
}
