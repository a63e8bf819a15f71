// Package pricing runs the index, generate, fix, value pipeline over
// portfolios of instruments against one market snapshot.
package pricing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/meenmo/rateslib/instruments"
	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/visitors"
)

// Position is one named instrument of a portfolio.
type Position struct {
	Name       string
	Instrument instruments.Instrument
}

// Result carries the analytics of one position in the snapshot's local
// currency.
type Result struct {
	Name     string
	NPV      float64
	Duration float64
}

// Engine prices portfolios against a market store. Each position runs
// its own pipeline, fanned out over a bounded worker pool; the store is
// only read, so positions never contend.
type Engine struct {
	store        *market.Store
	model        market.Model
	log          zerolog.Logger
	workers      int
	includeToday bool
}

// NewEngine builds an engine with a spot model over the store.
func NewEngine(store *market.Store, log zerolog.Logger) *Engine {
	return &Engine{
		store:   store,
		model:   market.NewSpotModel(store),
		log:     log,
		workers: 4,
	}
}

// WithWorkers bounds the number of positions priced concurrently.
func (e *Engine) WithWorkers(n int) *Engine {
	if n > 0 {
		e.workers = n
	}
	return e
}

func (e *Engine) WithIncludeTodayCashflows(on bool) *Engine {
	e.includeToday = on
	return e
}

// Price runs the pipeline over every position and returns results in
// input order. The first failing position aborts the batch.
func (e *Engine) Price(ctx context.Context, portfolio []Position) ([]Result, error) {
	results := make([]Result, len(portfolio))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, pos := range portfolio {
		i, pos := i, pos
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			r, err := e.priceOne(pos)
			if err != nil {
				return fmt.Errorf("pricing %q: %w", pos.Name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Prepare runs the first half of the pipeline for one position: index
// its cashflows, generate market data and fix floating coupons. The
// returned data aligns with the freshly assigned ids.
func (e *Engine) Prepare(pos Position) ([]market.Data, error) {
	indexer := visitors.NewIndexingVisitor()
	if err := indexer.Visit(pos.Instrument); err != nil {
		return nil, fmt.Errorf("preparing %q: %w", pos.Name, err)
	}
	data, err := e.model.Generate(indexer.Requests())
	if err != nil {
		return nil, fmt.Errorf("preparing %q: %w", pos.Name, err)
	}
	if err := visitors.NewFixingVisitor(data).Visit(pos.Instrument); err != nil {
		return nil, fmt.Errorf("preparing %q: %w", pos.Name, err)
	}
	return data, nil
}

func (e *Engine) priceOne(pos Position) (Result, error) {
	data, err := e.Prepare(pos)
	if err != nil {
		return Result{}, err
	}

	npv := visitors.NewNPVConstVisitor(data).WithIncludeTodayCashflows(e.includeToday)
	if err := npv.Visit(pos.Instrument); err != nil {
		return Result{}, err
	}
	duration := visitors.NewDurationConstVisitor(data).WithIncludeTodayCashflows(e.includeToday)
	if err := duration.Visit(pos.Instrument); err != nil {
		return Result{}, err
	}

	r := Result{Name: pos.Name, NPV: npv.NPV(), Duration: duration.Duration()}
	e.log.Debug().
		Str("position", pos.Name).
		Float64("npv", r.NPV).
		Float64("duration", r.Duration).
		Int("cashflows", len(pos.Instrument.Cashflows())).
		Msg("position priced")
	return r, nil
}

// ParRates solves the par value of each position sequentially. Double
// rate instruments contribute two values.
func (e *Engine) ParRates(portfolio []Position) ([]float64, error) {
	var values []float64
	for _, pos := range portfolio {
		data, err := e.Prepare(pos)
		if err != nil {
			return nil, err
		}
		par := visitors.NewParValueConstVisitor(data).
			WithModel(e.model).
			WithIncludeTodayCashflows(e.includeToday)
		if err := par.Visit(pos.Instrument); err != nil {
			return nil, fmt.Errorf("par rate %q: %w", pos.Name, err)
		}
		values = append(values, par.Values()...)
	}
	return values, nil
}
