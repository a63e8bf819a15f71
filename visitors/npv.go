package visitors

import (
	"fmt"
	"sort"
	"time"

	"github.com/meenmo/rateslib/instruments"
	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/utils"
)

// NPVConstVisitor accumulates the present value of every visited
// instrument in the snapshot's local currency. Cashflows on the
// evaluation date are excluded unless includeToday is set.
type NPVConstVisitor struct {
	data         []market.Data
	includeToday bool
	npv          float64
}

func NewNPVConstVisitor(data []market.Data) *NPVConstVisitor {
	return &NPVConstVisitor{data: data}
}

// WithIncludeTodayCashflows makes payments on the evaluation date count.
func (v *NPVConstVisitor) WithIncludeTodayCashflows(on bool) *NPVConstVisitor {
	v.includeToday = on
	return v
}

func (v *NPVConstVisitor) Visit(inst instruments.Instrument) error {
	for _, cf := range inst.Cashflows() {
		d, err := dataFor(cf, v.data)
		if err != nil {
			return fmt.Errorf("NPVConstVisitor.Visit: %w", err)
		}
		if !includeCashflow(cf, d, v.includeToday) {
			continue
		}
		pv, err := presentValue(cf, d)
		if err != nil {
			return fmt.Errorf("NPVConstVisitor.Visit: %w", err)
		}
		v.npv += pv
	}
	return nil
}

// NPV returns the accumulated present value.
func (v *NPVConstVisitor) NPV() float64 {
	return v.npv
}

// Reset clears the accumulator for reuse.
func (v *NPVConstVisitor) Reset() {
	v.npv = 0
}

// NPVByDateConstVisitor buckets present value by payment date.
type NPVByDateConstVisitor struct {
	data         []market.Data
	includeToday bool
	byDate       map[time.Time]float64
}

func NewNPVByDateConstVisitor(data []market.Data) *NPVByDateConstVisitor {
	return &NPVByDateConstVisitor{data: data, byDate: make(map[time.Time]float64)}
}

func (v *NPVByDateConstVisitor) WithIncludeTodayCashflows(on bool) *NPVByDateConstVisitor {
	v.includeToday = on
	return v
}

func (v *NPVByDateConstVisitor) Visit(inst instruments.Instrument) error {
	for _, cf := range inst.Cashflows() {
		d, err := dataFor(cf, v.data)
		if err != nil {
			return fmt.Errorf("NPVByDateConstVisitor.Visit: %w", err)
		}
		if !includeCashflow(cf, d, v.includeToday) {
			continue
		}
		pv, err := presentValue(cf, d)
		if err != nil {
			return fmt.Errorf("NPVByDateConstVisitor.Visit: %w", err)
		}
		v.byDate[cf.PaymentDate()] += pv
	}
	return nil
}

// NPVByDate returns the per-date buckets.
func (v *NPVByDateConstVisitor) NPVByDate() map[time.Time]float64 {
	return v.byDate
}

// Dates returns the bucket dates in ascending order.
func (v *NPVByDateConstVisitor) Dates() []time.Time {
	dates := make([]time.Time, 0, len(v.byDate))
	for d := range v.byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// NPVByTenorConstVisitor buckets present value into tenor intervals
// anchored at the evaluation date. Boundaries define half-open buckets
// [ref+b[i], ref+b[i+1]); payments outside every bucket are dropped.
type NPVByTenorConstVisitor struct {
	data         []market.Data
	boundaries   []utils.Period
	includeToday bool
	values       []float64
}

func NewNPVByTenorConstVisitor(data []market.Data, boundaries []utils.Period) (*NPVByTenorConstVisitor, error) {
	if len(boundaries) < 2 {
		return nil, fmt.Errorf("NewNPVByTenorConstVisitor: need at least two boundaries, got %d", len(boundaries))
	}
	return &NPVByTenorConstVisitor{
		data:       data,
		boundaries: boundaries,
		values:     make([]float64, len(boundaries)-1),
	}, nil
}

func (v *NPVByTenorConstVisitor) WithIncludeTodayCashflows(on bool) *NPVByTenorConstVisitor {
	v.includeToday = on
	return v
}

func (v *NPVByTenorConstVisitor) Visit(inst instruments.Instrument) error {
	for _, cf := range inst.Cashflows() {
		d, err := dataFor(cf, v.data)
		if err != nil {
			return fmt.Errorf("NPVByTenorConstVisitor.Visit: %w", err)
		}
		if !includeCashflow(cf, d, v.includeToday) {
			continue
		}
		bucket := v.bucketFor(d.ReferenceDate, cf.PaymentDate())
		if bucket < 0 {
			continue
		}
		pv, err := presentValue(cf, d)
		if err != nil {
			return fmt.Errorf("NPVByTenorConstVisitor.Visit: %w", err)
		}
		v.values[bucket] += pv
	}
	return nil
}

func (v *NPVByTenorConstVisitor) bucketFor(ref, payment time.Time) int {
	for i := 0; i < len(v.boundaries)-1; i++ {
		lo := utils.AddPeriod(ref, v.boundaries[i])
		hi := utils.AddPeriod(ref, v.boundaries[i+1])
		if !payment.Before(lo) && payment.Before(hi) {
			return i
		}
	}
	return -1
}

// NPVByTenor returns one value per bucket, in boundary order.
func (v *NPVByTenorConstVisitor) NPVByTenor() []float64 {
	return v.values
}
