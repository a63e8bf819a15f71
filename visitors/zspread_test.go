package visitors_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/meenmo/rateslib/cashflows"
	"github.com/meenmo/rateslib/curves"
	"github.com/meenmo/rateslib/indices"
	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/utils"
	"github.com/meenmo/rateslib/visitors"
)

// flatMarket builds a snapshot over a flat continuously compounded curve,
// so implied zero rates equal the flat rate at every tenor.
func flatMarket(t *testing.T, ref time.Time, r float64) *market.Store {
	t.Helper()
	curve := curves.NewFlatForwardCurve(ref, rates.New(r, contDef()))
	idx := indices.NewIborIndex("TEST-FLAT", utils.NewPeriod(6, utils.UnitMonths), contDef()).LinkTo(curve)
	store := market.NewStore(ref, market.USD)
	store.AddIndex(idx)
	return store
}

func TestZSpreadConstVisitor_AtMarketTargetIsZero(t *testing.T) {
	t.Parallel()

	ref := date(2025, 1, 1)
	store := flatMarket(t, ref, 0.04)
	inst := zeroInstrument(t, date(2025, 6, 1), date(2026, 6, 1), 0.05)
	data := generate(t, store, inst)

	npv := visitors.NewNPVConstVisitor(data)
	if err := npv.Visit(inst); err != nil {
		t.Fatalf("Visit error: %v", err)
	}

	visitor := visitors.NewZSpreadConstVisitor(data, npv.NPV(), contDef())
	if err := visitor.Visit(inst); err != nil {
		t.Fatalf("Visit error: %v", err)
	}

	values := visitor.Values()
	if len(values) != 1 || math.Abs(values[0]) > 1e-6 {
		t.Fatalf("z-spread at the market price should vanish, got %v", values)
	}
}

func TestZSpreadConstVisitor_RecoversParallelShift(t *testing.T) {
	t.Parallel()

	ref := date(2025, 1, 1)
	r0 := 0.04
	shift := 0.01
	store := flatMarket(t, ref, r0)
	inst := zeroInstrument(t, date(2025, 6, 1), date(2026, 6, 1), 0.05)
	data := generate(t, store, inst)

	// Price the same cashflows off the curve shifted up by 100bp; the
	// solver must read that shift back out.
	dc := utils.NewDayCounter(utils.Actual365Fixed)
	target := 0.0
	for _, cf := range inst.Cashflows() {
		amount, err := cf.Amount()
		if err != nil {
			t.Fatalf("Amount error: %v", err)
		}
		tau := dc.YearFraction(ref, cf.PaymentDate())
		target += amount * cf.Side().Sign() * math.Exp(-(r0+shift)*tau)
	}

	visitor := visitors.NewZSpreadConstVisitor(data, target, contDef())
	if err := visitor.Visit(inst); err != nil {
		t.Fatalf("Visit error: %v", err)
	}

	values := visitor.Values()
	if len(values) != 1 || math.Abs(values[0]-shift) > 1e-5 {
		t.Fatalf("z-spread mismatch: got %v want %v", values, shift)
	}
}

func TestZSpreadConstVisitor_NeedsDiscountData(t *testing.T) {
	t.Parallel()

	red := cashflows.NewRedemption(100, date(2026, 1, 1), market.USD, cashflows.Receive)
	red.SetID(0)

	err := visitors.NewZSpreadConstVisitor([]market.Data{{ID: 0}}, 0, contDef()).Visit(wrap(red))
	if !errors.Is(err, market.ErrNoDiscountRequest) {
		t.Fatalf("expected ErrNoDiscountRequest, got %v", err)
	}
}
