package indices_test

import (
	"math"
	"sync"
	"testing"

	"github.com/meenmo/rateslib/indices"
	"github.com/meenmo/rateslib/utils"
)

func TestOvernightIndex_IndexLevels(t *testing.T) {
	t.Parallel()

	idx := indices.NewOvernightIndex("SOFR", simple360Def()).
		LinkTo(flatCurve(date(2025, 2, 1), 0.05))
	for i := 0; i < 3; i++ {
		idx.AddFixing(date(2025, 1, 1+i), 0.01)
	}

	// Seeded at 1.0 on the first fixing date, then compounded one simple
	// daily accrual at a time.
	lv0, err := idx.IndexLevel(date(2025, 1, 1))
	if err != nil {
		t.Fatalf("IndexLevel error: %v", err)
	}
	if lv0 != 1.0 {
		t.Fatalf("seed level mismatch: got %v", lv0)
	}
	lv3, err := idx.IndexLevel(date(2025, 1, 4))
	if err != nil {
		t.Fatalf("IndexLevel error: %v", err)
	}
	want := math.Pow(1.0+0.01/360.0, 3)
	if math.Abs(lv3-want) > 1e-15 {
		t.Fatalf("compounded level mismatch: got %.15f want %.15f", lv3, want)
	}

	if _, err := idx.IndexLevel(date(2025, 1, 10)); err == nil {
		t.Fatalf("expected error for level outside the fixing range")
	}
}

func TestOvernightIndex_RealizedForwardRate(t *testing.T) {
	t.Parallel()

	ref := date(2025, 2, 1)
	idx := indices.NewOvernightIndex("ESTR", simple360Def()).
		LinkTo(flatCurve(ref, 0.05))
	for i := 0; i < 5; i++ {
		idx.AddFixing(date(2025, 1, 1+i), 0.01)
	}

	// A single realized day returns the daily fixing under the same simple
	// convention.
	fwd, err := idx.ForwardRate(date(2025, 1, 2), date(2025, 1, 3), simple360Def())
	if err != nil {
		t.Fatalf("ForwardRate error: %v", err)
	}
	if math.Abs(fwd-0.01) > 1e-12 {
		t.Fatalf("realized overnight forward mismatch: got %.12f want 0.01", fwd)
	}
}

func TestOvernightIndex_ConcurrentRealizedReads(t *testing.T) {
	t.Parallel()

	ref := date(2025, 2, 1)
	idx := indices.NewOvernightIndex("SOFR", simple360Def()).
		LinkTo(flatCurve(ref, 0.05))
	for i := 0; i < 10; i++ {
		idx.AddFixing(date(2025, 1, 1+i), 0.01)
	}

	// The first reader builds the level series; every goroutine must see
	// the same realized forward.
	const readers = 8
	results := make([]float64, readers)
	errs := make([]error, readers)
	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = idx.ForwardRate(date(2025, 1, 2), date(2025, 1, 8), simple360Def())
		}(i)
	}
	wg.Wait()

	for i := 0; i < readers; i++ {
		if errs[i] != nil {
			t.Fatalf("reader %d: ForwardRate error: %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Fatalf("reader %d disagrees: got %.15f want %.15f", i, results[i], results[0])
		}
	}
	// Six compounded daily accruals back out to the daily rate up to the
	// second-order compounding drift.
	if math.Abs(results[0]-0.01) > 1e-5 {
		t.Fatalf("realized forward mismatch: got %.8f want 0.01", results[0])
	}
}

func TestOvernightIndex_FutureForwardReadsCurve(t *testing.T) {
	t.Parallel()

	ref := date(2025, 1, 1)
	idx := indices.NewOvernightIndex("TONAR", contDef()).
		LinkTo(flatCurve(ref, 0.03))

	fwd, err := idx.ForwardRate(date(2025, 3, 1), date(2025, 9, 1), contDef())
	if err != nil {
		t.Fatalf("ForwardRate error: %v", err)
	}
	if math.Abs(fwd-0.03) > 1e-12 {
		t.Fatalf("future overnight forward mismatch: got %.12f want 0.03", fwd)
	}
}

func TestOvernightIndex_AdvanceExtendsFixings(t *testing.T) {
	t.Parallel()

	ref := date(2025, 1, 1)
	idx := indices.NewOvernightIndex("SOFR", contDef()).
		LinkTo(flatCurve(ref, 0.05))
	idx.AddFixing(date(2024, 12, 31), 0.05)

	rolled, err := idx.AdvanceToPeriod(utils.NewPeriod(3, utils.UnitDays))
	if err != nil {
		t.Fatalf("AdvanceToPeriod error: %v", err)
	}
	if want := date(2025, 1, 4); !rolled.ReferenceDate().Equal(want) {
		t.Fatalf("rolled reference date mismatch: got %s", rolled.ReferenceDate().Format("2006-01-02"))
	}
	// The original fixing survives and the skipped days are synthesized.
	if _, err := rolled.Fixing(date(2024, 12, 31)); err != nil {
		t.Fatalf("original fixing lost after roll: %v", err)
	}
	for i := 0; i < 3; i++ {
		fix, err := rolled.Fixing(date(2025, 1, 1+i))
		if err != nil {
			t.Fatalf("Fixing error: %v", err)
		}
		if math.Abs(fix-0.05) > 1e-4 {
			t.Fatalf("synthesized fixing mismatch: got %.8f", fix)
		}
	}
}
