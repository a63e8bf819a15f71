package visitors_test

import (
	"math"
	"testing"

	"github.com/meenmo/rateslib/visitors"
)

func TestAccruedAmountConstVisitor(t *testing.T) {
	t.Parallel()

	start := date(2025, 1, 1)
	end := date(2026, 1, 1)
	// 3.6% simple ACT/360 on 100 accrues exactly one cent per day.
	inst := zeroInstrument(t, start, end, 0.036)

	visitor, err := visitors.NewAccruedAmountConstVisitor(start, date(2025, 1, 11))
	if err != nil {
		t.Fatalf("NewAccruedAmountConstVisitor error: %v", err)
	}
	if err := visitor.Visit(inst); err != nil {
		t.Fatalf("Visit error: %v", err)
	}

	if got := visitor.AccruedAt(date(2025, 1, 5)); math.Abs(got-0.01) > 1e-12 {
		t.Fatalf("daily accrual mismatch: got %.12f want 0.01", got)
	}
	if got := visitor.TotalAccrued(); math.Abs(got-0.10) > 1e-12 {
		t.Fatalf("total accrual mismatch: got %.12f want 0.10", got)
	}
	if len(visitor.Accrued()) != 10 {
		t.Fatalf("expected 10 daily entries, got %d", len(visitor.Accrued()))
	}
}

func TestAccruedAmountConstVisitor_ClipsToCouponWindow(t *testing.T) {
	t.Parallel()

	start := date(2025, 6, 1)
	end := date(2026, 6, 1)
	inst := zeroInstrument(t, start, end, 0.036)

	// The horizon starts five days before the coupon does; only the
	// overlapping days accrue.
	visitor, err := visitors.NewAccruedAmountConstVisitor(date(2025, 5, 27), date(2025, 6, 4))
	if err != nil {
		t.Fatalf("NewAccruedAmountConstVisitor error: %v", err)
	}
	if err := visitor.Visit(inst); err != nil {
		t.Fatalf("Visit error: %v", err)
	}

	if got := visitor.AccruedAt(date(2025, 5, 28)); got != 0 {
		t.Fatalf("accrual before the coupon window: %v", got)
	}
	if got := visitor.TotalAccrued(); math.Abs(got-0.03) > 1e-12 {
		t.Fatalf("total accrual mismatch: got %.12f want 0.03", got)
	}
}

func TestAccruedAmountConstVisitor_RejectsEmptyHorizon(t *testing.T) {
	t.Parallel()

	if _, err := visitors.NewAccruedAmountConstVisitor(date(2025, 1, 1), date(2025, 1, 1)); err == nil {
		t.Fatal("expected error for an empty horizon")
	}
	if _, err := visitors.NewAccruedAmountConstVisitor(date(2025, 1, 2), date(2025, 1, 1)); err == nil {
		t.Fatal("expected error for an inverted horizon")
	}
}
