package visitors

import (
	"fmt"

	"github.com/meenmo/rateslib/instruments"
	"github.com/meenmo/rateslib/market"
)

// IndexingVisitor assigns registry ids and collects market requests. Ids
// are positions in the request slice, so requests[i].ID == i always
// holds; visiting an instrument twice simply re-registers its cashflows
// under fresh ids.
type IndexingVisitor struct {
	requests []market.Request
}

func NewIndexingVisitor() *IndexingVisitor {
	return &IndexingVisitor{}
}

func (v *IndexingVisitor) Visit(inst instruments.Instrument) error {
	for _, cf := range inst.Cashflows() {
		cf.SetID(len(v.requests))
		req, err := cf.MarketRequest()
		if err != nil {
			return fmt.Errorf("IndexingVisitor.Visit: %w", err)
		}
		v.requests = append(v.requests, req)
	}
	return nil
}

// Requests returns the collected requests in id order.
func (v *IndexingVisitor) Requests() []market.Request {
	return v.requests
}
