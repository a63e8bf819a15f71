package market

import (
	"fmt"

	"github.com/meenmo/rateslib/indices"
)

// Model resolves market requests into positional market data: data[i]
// answers requests[i].
type Model interface {
	Generate(requests []Request) ([]Data, error)
}

// SpotModel resolves requests directly against a snapshot store.
type SpotModel struct {
	store *Store
}

// NewSpotModel builds a model over the given snapshot.
func NewSpotModel(store *Store) *SpotModel {
	return &SpotModel{store: store}
}

// Generate resolves every request in order, short-circuiting on the first
// failure. Discount factors for dates before the reference date resolve to
// zero: those cashflows are expired and never contribute to analytics.
func (m *SpotModel) Generate(requests []Request) ([]Data, error) {
	data := make([]Data, len(requests))
	for i, req := range requests {
		d, err := m.resolve(req)
		if err != nil {
			return nil, fmt.Errorf("SpotModel.Generate: request %d: %w", req.ID, err)
		}
		data[i] = d
	}
	return data, nil
}

func (m *SpotModel) resolve(req Request) (Data, error) {
	out := Data{ID: req.ID, ReferenceDate: m.store.ReferenceDate()}

	if req.Discount != nil {
		idx, err := m.store.Index(req.Discount.CurveID)
		if err != nil {
			return Data{}, err
		}
		if req.Discount.Date.Before(m.store.ReferenceDate()) {
			out.Df = 0.0
		} else {
			df, err := idx.TermStructure().DiscountFactor(req.Discount.Date)
			if err != nil {
				return Data{}, err
			}
			out.Df = df
		}
		out.HasDf = true
	}

	if req.Forward != nil {
		idx, err := m.store.Index(req.Forward.CurveID)
		if err != nil {
			return Data{}, err
		}
		fwd, err := m.forwardRate(idx, req)
		if err != nil {
			return Data{}, err
		}
		out.Fwd = fwd
		out.HasFwd = true
	}

	if req.Fx != nil {
		// Fx is quoted as cashflow currency per unit of local currency, so
		// analytics divide by it to land in the local currency.
		fx, err := m.store.ExchangeRateStore().Rate(m.store.LocalCurrency(), req.Fx.Currency)
		if err != nil {
			return Data{}, err
		}
		out.Fx = fx
		out.HasFx = true
	}

	return out, nil
}

// forwardRate delegates past/future blending to the index: a realized
// fixing when the fixing date has passed, the curve forward otherwise.
func (m *SpotModel) forwardRate(idx indices.InterestRateIndex, req Request) (float64, error) {
	ref := m.store.ReferenceDate()
	fwdReq := req.Forward

	if fwdReq.FixingDate.Before(ref) {
		if fix, err := idx.Fixing(fwdReq.FixingDate); err == nil {
			return fix, nil
		}
		// No fixing recorded exactly on the fixing date: fall back to the
		// index's own blending over the accrual window (compounded
		// overnight indices in particular resolve this way).
		return idx.ForwardRate(fwdReq.StartDate, fwdReq.EndDate, fwdReq.Def)
	}
	return idx.ForwardRate(fwdReq.StartDate, fwdReq.EndDate, fwdReq.Def)
}
