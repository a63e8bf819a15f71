package market

import (
	"fmt"
	"time"

	"github.com/meenmo/rateslib/indices"
	"github.com/meenmo/rateslib/utils"
)

// Store is a coherent market snapshot: a reference date, a local currency,
// the FX graph and the index store. It is mutated only during a
// single-threaded setup phase (adding indices and FX rates) and then
// treated as read-only shared state by every pricing pass.
type Store struct {
	refDate       time.Time
	localCurrency Currency
	fx            *ExchangeRateStore
	indexes       *IndexStore

	// riskFree maps a currency to the index whose curve rolls its FX spot
	// on time-advance. Currencies without an entry keep their spot.
	riskFree map[Currency]int
}

// NewStore builds an empty snapshot at the given reference date.
func NewStore(refDate time.Time, localCurrency Currency) *Store {
	return &Store{
		refDate:       refDate,
		localCurrency: localCurrency,
		fx:            NewExchangeRateStore(),
		indexes:       NewIndexStore(),
		riskFree:      make(map[Currency]int),
	}
}

func (s *Store) ReferenceDate() time.Time   { return s.refDate }
func (s *Store) LocalCurrency() Currency    { return s.localCurrency }
func (s *Store) ExchangeRateStore() *ExchangeRateStore { return s.fx }
func (s *Store) IndexStore() *IndexStore    { return s.indexes }

// AddIndex registers an index and returns the curve id cashflows should
// reference.
func (s *Store) AddIndex(idx indices.InterestRateIndex) int {
	return s.indexes.Add(idx)
}

// Index resolves a curve id.
func (s *Store) Index(id int) (indices.InterestRateIndex, error) {
	return s.indexes.Index(id)
}

// AddExchangeRate registers a spot edge 1 from = rate to.
func (s *Store) AddExchangeRate(from, to Currency, rate float64) error {
	return s.fx.AddRate(from, to, rate)
}

// SetRiskFreeCurve designates the index whose curve drives ccy's FX spot
// under time-advance.
func (s *Store) SetRiskFreeCurve(ccy Currency, indexID int) error {
	if _, err := s.indexes.Index(indexID); err != nil {
		return fmt.Errorf("SetRiskFreeCurve: %w", err)
	}
	s.riskFree[ccy] = indexID
	return nil
}

// Clone returns a snapshot sharing curves and indices structurally, with an
// independent FX cache. Scenario tweaks mutate the clone during their own
// setup phase.
func (s *Store) Clone() *Store {
	out := &Store{
		refDate:       s.refDate,
		localCurrency: s.localCurrency,
		fx:            s.fx.Clone(),
		indexes:       s.indexes.Clone(),
		riskFree:      make(map[Currency]int, len(s.riskFree)),
	}
	for ccy, id := range s.riskFree {
		out.riskFree[ccy] = id
	}
	return out
}

// AdvanceToPeriod rolls the snapshot forward by p: curves are rescaled so
// future forward rates are preserved, indices synthesize daily fixings over
// the gap, and FX spots accrue the discount-factor ratio of their
// currencies' risk-free curves. The local currency is preserved.
func (s *Store) AdvanceToPeriod(p utils.Period) (*Store, error) {
	if p.IsNegative() {
		return nil, fmt.Errorf("Store.AdvanceToPeriod: negative period %s", p)
	}
	newRef := utils.AddPeriod(s.refDate, p)

	out := NewStore(newRef, s.localCurrency)

	// Indices first: curve ids must survive the roll unchanged.
	for id := 0; id < s.indexes.Len(); id++ {
		idx, err := s.indexes.Index(id)
		if err != nil {
			return nil, fmt.Errorf("Store.AdvanceToPeriod: %w", err)
		}
		advanced, err := idx.AdvanceToPeriod(p)
		if err != nil {
			return nil, fmt.Errorf("Store.AdvanceToPeriod: index %s: %w", idx.Name(), err)
		}
		out.indexes.Add(advanced)
	}
	for ccy, id := range s.riskFree {
		out.riskFree[ccy] = id
	}

	// FX spots roll by the ratio of the two currencies' discount factors
	// over the gap; currencies without a risk-free curve contribute 1.
	for from, tos := range s.fx.Edges() {
		fromFactor, err := s.currencyDiscountFactor(from, newRef)
		if err != nil {
			return nil, fmt.Errorf("Store.AdvanceToPeriod: %w", err)
		}
		for to, spot := range tos {
			toFactor, err := s.currencyDiscountFactor(to, newRef)
			if err != nil {
				return nil, fmt.Errorf("Store.AdvanceToPeriod: %w", err)
			}
			if err := out.fx.AddRate(from, to, spot*fromFactor/toFactor); err != nil {
				return nil, fmt.Errorf("Store.AdvanceToPeriod: %w", err)
			}
		}
	}
	return out, nil
}

// AdvanceToDate rolls the snapshot to the given date.
func (s *Store) AdvanceToDate(d time.Time) (*Store, error) {
	if d.Before(s.refDate) {
		return nil, fmt.Errorf("Store.AdvanceToDate: target %s precedes reference date %s",
			d.Format("2006-01-02"), s.refDate.Format("2006-01-02"))
	}
	return s.AdvanceToPeriod(utils.NewPeriod(int(utils.Days(s.refDate, d)), utils.UnitDays))
}

func (s *Store) currencyDiscountFactor(ccy Currency, d time.Time) (float64, error) {
	id, ok := s.riskFree[ccy]
	if !ok {
		return 1.0, nil
	}
	idx, err := s.indexes.Index(id)
	if err != nil {
		return 0, err
	}
	return idx.TermStructure().DiscountFactor(d)
}
