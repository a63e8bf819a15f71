package visitors_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/meenmo/rateslib/cashflows"
	"github.com/meenmo/rateslib/instruments"
	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/utils"
	"github.com/meenmo/rateslib/visitors"
)

func TestParValueConstVisitor_FixedRate(t *testing.T) {
	t.Parallel()

	ref := date(2025, 1, 1)
	start := date(2025, 6, 1)
	end := date(2026, 6, 1)
	store := nodeMarket(t, ref, map[time.Time]float64{start: 0.99, end: 0.95})

	inst := zeroInstrument(t, start, end, 0.02)
	data := generate(t, store, inst)

	visitor := visitors.NewParValueConstVisitor(data)
	if err := visitor.Visit(inst); err != nil {
		t.Fatalf("Visit error: %v", err)
	}

	values := visitor.Values()
	if len(values) != 1 {
		t.Fatalf("expected one value, got %d", len(values))
	}
	// The single coupon must carry the forward implied by the two nodes.
	want := (0.99/0.95 - 1.0) * 360.0 / 365.0
	if math.Abs(values[0]-want) > 1e-6 {
		t.Fatalf("par rate mismatch: got %.10f want %.10f", values[0], want)
	}

	// Solving works on a clone; the instrument keeps its original coupon.
	for _, cf := range inst.Cashflows() {
		if c, ok := cf.(*cashflows.FixedRateCoupon); ok {
			if c.Rate().Rate != 0.02 {
				t.Fatalf("original instrument was mutated: rate %v", c.Rate().Rate)
			}
		}
	}
}

func TestParValueConstVisitor_FloatingSpreadIsZeroAtPar(t *testing.T) {
	t.Parallel()

	ref := date(2025, 1, 1)
	start := date(2025, 6, 1)
	end := date(2026, 6, 1)
	store := nodeMarket(t, ref, map[time.Time]float64{start: 0.99, end: 0.95})

	inst, err := instruments.NewMakeFloatingRateInstrument().
		WithStructure(instruments.Zero).
		WithStartDate(start).
		WithEndDate(end).
		WithRateDefinition(simple365Def()).
		WithSpread(0.01).
		WithNotional(100).
		WithCurrency(market.USD).
		WithDiscountCurveID(0).
		WithForecastCurveID(0).
		Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	data := generate(t, store, inst)

	visitor := visitors.NewParValueConstVisitor(data)
	if err := visitor.Visit(inst); err != nil {
		t.Fatalf("Visit error: %v", err)
	}

	// Forecast and discount share a curve, so the par spread vanishes.
	values := visitor.Values()
	if len(values) != 1 || math.Abs(values[0]) > 1e-6 {
		t.Fatalf("par spread mismatch: got %v want 0", values)
	}
}

func TestParValueConstVisitor_DoubleRate(t *testing.T) {
	t.Parallel()

	ref := date(2025, 1, 1)
	start := date(2025, 6, 1)
	change := date(2026, 6, 1)
	end := date(2027, 6, 1)
	store := nodeMarket(t, ref, map[time.Time]float64{start: 0.99, change: 0.95, end: 0.90})

	inst, err := instruments.NewMakeDoubleRateInstrument().
		WithRateType(instruments.FixedThenFixed).
		WithStructure(instruments.Bullet).
		WithStartDate(start).
		WithChangeRateDate(change).
		WithEndDate(end).
		WithFrequency(utils.Annual).
		WithFirstRate(rates.New(0.03, simple360Def())).
		WithSecondRate(rates.New(0.03, simple360Def())).
		WithNotional(100).
		WithCurrency(market.USD).
		WithDiscountCurveID(0).
		Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	data := generate(t, store, inst)

	visitor := visitors.NewParValueConstVisitor(data).WithModel(market.NewSpotModel(store))
	if err := visitor.Visit(inst); err != nil {
		t.Fatalf("Visit error: %v", err)
	}

	values := visitor.Values()
	if len(values) != 2 {
		t.Fatalf("expected two values, got %d", len(values))
	}
	// Each closed part solves to its own period's forward rate.
	wantFirst := (0.99/0.95 - 1.0) * 360.0 / 365.0
	wantSecond := (0.95/0.90 - 1.0) * 360.0 / 365.0
	if math.Abs(values[0]-wantFirst) > 1e-6 {
		t.Fatalf("first par rate mismatch: got %.10f want %.10f", values[0], wantFirst)
	}
	if math.Abs(values[1]-wantSecond) > 1e-6 {
		t.Fatalf("second par rate mismatch: got %.10f want %.10f", values[1], wantSecond)
	}
}

func TestParValueConstVisitor_DoubleRateNeedsModel(t *testing.T) {
	t.Parallel()

	inst, err := instruments.NewMakeDoubleRateInstrument().
		WithRateType(instruments.FixedThenFixed).
		WithStructure(instruments.Bullet).
		WithStartDate(date(2025, 6, 1)).
		WithChangeRateDate(date(2026, 6, 1)).
		WithEndDate(date(2027, 6, 1)).
		WithFrequency(utils.Annual).
		WithFirstRate(rates.New(0.03, simple360Def())).
		WithSecondRate(rates.New(0.03, simple360Def())).
		WithNotional(100).
		WithCurrency(market.USD).
		WithDiscountCurveID(0).
		Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	err = visitors.NewParValueConstVisitor(nil).Visit(inst)
	if err == nil || !strings.Contains(err.Error(), "need a model") {
		t.Fatalf("expected model requirement error, got %v", err)
	}
}

func TestParValueConstVisitor_UnsupportedInstrument(t *testing.T) {
	t.Parallel()

	red := cashflows.NewRedemption(100, date(2026, 1, 1), market.USD, cashflows.Receive)
	err := visitors.NewParValueConstVisitor(nil).Visit(wrap(red))

	var nie instruments.NotImplementedError
	if !errors.As(err, &nie) {
		t.Fatalf("expected NotImplementedError, got %v", err)
	}
}
