package market_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/rateslib/curves"
	"github.com/meenmo/rateslib/indices"
	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func contDef() rates.Definition {
	return rates.NewDefinition(utils.NewDayCounter(utils.Actual365Fixed), rates.Continuous, utils.Annual)
}

func flatIndex(name string, ref time.Time, r float64) *indices.IborIndex {
	curve := curves.NewFlatForwardCurve(ref, rates.New(r, contDef()))
	return indices.NewIborIndex(name, utils.NewPeriod(6, utils.UnitMonths), contDef()).LinkTo(curve)
}

func TestStore_IndexIDsArePositional(t *testing.T) {
	t.Parallel()

	ref := date(2025, 1, 1)
	store := market.NewStore(ref, market.USD)

	id0 := store.AddIndex(flatIndex("SOFR-CURVE", ref, 0.05))
	id1 := store.AddIndex(flatIndex("ESTR-CURVE", ref, 0.03))
	if id0 != 0 || id1 != 1 {
		t.Fatalf("index ids mismatch: got %d, %d", id0, id1)
	}

	idx, err := store.Index(id1)
	if err != nil {
		t.Fatalf("Index error: %v", err)
	}
	if idx.Name() != "ESTR-CURVE" {
		t.Fatalf("index name mismatch: got %q", idx.Name())
	}
	if _, err := store.Index(7); err == nil {
		t.Fatalf("expected error for unknown index id")
	}

	byName, err := store.IndexStore().IDByName("SOFR-CURVE")
	if err != nil {
		t.Fatalf("IDByName error: %v", err)
	}
	if byName != id0 {
		t.Fatalf("IDByName mismatch: got %d want %d", byName, id0)
	}
}

func TestStore_AdvanceRollsFxBySpotCarry(t *testing.T) {
	t.Parallel()

	ref := date(2025, 1, 1)
	store := market.NewStore(ref, market.USD)
	usdID := store.AddIndex(flatIndex("USD-RF", ref, 0.05))
	if err := store.AddExchangeRate(market.USD, market.CLP, 800); err != nil {
		t.Fatalf("AddExchangeRate error: %v", err)
	}
	if err := store.SetRiskFreeCurve(market.USD, usdID); err != nil {
		t.Fatalf("SetRiskFreeCurve error: %v", err)
	}

	rolled, err := store.AdvanceToPeriod(utils.NewPeriod(1, utils.UnitYears))
	if err != nil {
		t.Fatalf("AdvanceToPeriod error: %v", err)
	}
	if want := date(2026, 1, 1); !rolled.ReferenceDate().Equal(want) {
		t.Fatalf("rolled reference date mismatch: got %s", rolled.ReferenceDate().Format("2006-01-02"))
	}

	// USD carries at 5% continuous for one year, CLP has no risk-free curve
	// and contributes a unit factor, so the spot shrinks by exp(-0.05).
	spot, err := rolled.ExchangeRateStore().Rate(market.USD, market.CLP)
	if err != nil {
		t.Fatalf("Rate error: %v", err)
	}
	want := 800 * math.Exp(-0.05)
	if math.Abs(spot-want) > 1e-9 {
		t.Fatalf("rolled spot mismatch: got %.9f want %.9f", spot, want)
	}

	if _, err := store.AdvanceToPeriod(utils.NewPeriod(-1, utils.UnitDays)); err == nil {
		t.Fatalf("expected error for negative advance period")
	}
}

func TestStore_AdvanceComposes(t *testing.T) {
	t.Parallel()

	ref := date(2025, 1, 1)
	curve, err := curves.NewDiscountCurve(ref, map[time.Time]float64{
		date(2025, 7, 1): 0.985,
		date(2026, 1, 1): 0.97,
		date(2027, 1, 1): 0.93,
	}, curves.LogLinearInterpolator{})
	if err != nil {
		t.Fatalf("NewDiscountCurve error: %v", err)
	}

	build := func() *market.Store {
		store := market.NewStore(ref, market.USD)
		id := store.AddIndex(indices.NewIborIndex("USD-RF", utils.NewPeriod(6, utils.UnitMonths), contDef()).LinkTo(curve))
		if err := store.AddExchangeRate(market.USD, market.CLP, 800); err != nil {
			t.Fatalf("AddExchangeRate error: %v", err)
		}
		if err := store.SetRiskFreeCurve(market.USD, id); err != nil {
			t.Fatalf("SetRiskFreeCurve error: %v", err)
		}
		return store
	}

	halfYear := utils.NewPeriod(6, utils.UnitMonths)
	oneStep, err := build().AdvanceToPeriod(utils.NewPeriod(1, utils.UnitYears))
	if err != nil {
		t.Fatalf("AdvanceToPeriod error: %v", err)
	}
	first, err := build().AdvanceToPeriod(halfYear)
	if err != nil {
		t.Fatalf("AdvanceToPeriod error: %v", err)
	}
	twoStep, err := first.AdvanceToPeriod(halfYear)
	if err != nil {
		t.Fatalf("AdvanceToPeriod error: %v", err)
	}

	if !oneStep.ReferenceDate().Equal(twoStep.ReferenceDate()) {
		t.Fatalf("reference dates diverge: %s vs %s",
			oneStep.ReferenceDate().Format("2006-01-02"), twoStep.ReferenceDate().Format("2006-01-02"))
	}

	// Rolling a year at once and rolling twice by six months must leave
	// identical discount factors and spot rates.
	probe := date(2027, 1, 1)
	for _, s := range []*market.Store{oneStep, twoStep} {
		idx, err := s.Index(0)
		if err != nil {
			t.Fatalf("Index error: %v", err)
		}
		df, err := idx.TermStructure().DiscountFactor(probe)
		if err != nil {
			t.Fatalf("DiscountFactor error: %v", err)
		}
		if want := 0.93 / 0.97; math.Abs(df-want) > 1e-12 {
			t.Fatalf("rolled DF mismatch: got %.15f want %.15f", df, want)
		}
	}

	spotOne, err := oneStep.ExchangeRateStore().Rate(market.USD, market.CLP)
	if err != nil {
		t.Fatalf("Rate error: %v", err)
	}
	spotTwo, err := twoStep.ExchangeRateStore().Rate(market.USD, market.CLP)
	if err != nil {
		t.Fatalf("Rate error: %v", err)
	}
	if math.Abs(spotOne-spotTwo) > 1e-12 {
		t.Fatalf("rolled spots diverge: %.15f vs %.15f", spotOne, spotTwo)
	}
}

func TestStore_AdvanceToDate(t *testing.T) {
	t.Parallel()

	ref := date(2025, 1, 1)
	store := market.NewStore(ref, market.USD)
	store.AddIndex(flatIndex("USD-RF", ref, 0.05))

	rolled, err := store.AdvanceToDate(date(2025, 4, 1))
	if err != nil {
		t.Fatalf("AdvanceToDate error: %v", err)
	}
	if !rolled.ReferenceDate().Equal(date(2025, 4, 1)) {
		t.Fatalf("reference date mismatch: got %s", rolled.ReferenceDate().Format("2006-01-02"))
	}

	if _, err := store.AdvanceToDate(date(2024, 12, 1)); err == nil {
		t.Fatalf("expected error for target before reference date")
	}
}

func TestStore_CloneIsIndependentSnapshot(t *testing.T) {
	t.Parallel()

	ref := date(2025, 1, 1)
	store := market.NewStore(ref, market.EUR)
	store.AddIndex(flatIndex("ESTR-CURVE", ref, 0.03))
	if err := store.AddExchangeRate(market.EUR, market.USD, 1.1); err != nil {
		t.Fatalf("AddExchangeRate error: %v", err)
	}

	clone := store.Clone()
	if clone.LocalCurrency() != market.EUR {
		t.Fatalf("local currency mismatch: got %s", clone.LocalCurrency())
	}
	if err := clone.AddExchangeRate(market.EUR, market.USD, 1.2); err != nil {
		t.Fatalf("AddExchangeRate error: %v", err)
	}
	orig, err := store.ExchangeRateStore().Rate(market.EUR, market.USD)
	if err != nil {
		t.Fatalf("Rate error: %v", err)
	}
	if math.Abs(orig-1.1) > 1e-12 {
		t.Fatalf("clone mutation leaked into original: got %v", orig)
	}
}
