package market

import (
	"fmt"
	"sync"
)

type currencyPair struct {
	from, to Currency
}

// ExchangeRateStore is a directed weighted graph on currencies. An edge
// (A -> B, r) means 1 A = r B at the reference date. Queries for pairs with
// no direct edge run a BFS over the graph, walking edges forward by
// multiplication and backward by division, and memoize the result.
//
// The memo cache is guarded so concurrent Rate calls are safe; writes are
// idempotent so a pair raced by two readers is computed at most once per
// winner with identical results.
type ExchangeRateStore struct {
	mu    sync.RWMutex
	edges map[Currency]map[Currency]float64
	cache map[currencyPair]float64
}

// NewExchangeRateStore builds an empty FX graph.
func NewExchangeRateStore() *ExchangeRateStore {
	return &ExchangeRateStore{
		edges: make(map[Currency]map[Currency]float64),
		cache: make(map[currencyPair]float64),
	}
}

// AddRate registers a spot edge: 1 from = rate to. Part of single-threaded
// setup; it clears the memo cache.
func (s *ExchangeRateStore) AddRate(from, to Currency, rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("AddRate: non-positive rate %v for %s->%s", rate, from, to)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edges[from] == nil {
		s.edges[from] = make(map[Currency]float64)
	}
	s.edges[from][to] = rate
	s.cache = make(map[currencyPair]float64)
	return nil
}

// Rate returns the conversion 1 from = r to, triangulating through the
// graph when no direct edge exists.
func (s *ExchangeRateStore) Rate(from, to Currency) (float64, error) {
	if from == to {
		return 1.0, nil
	}

	s.mu.RLock()
	if r, ok := s.cache[currencyPair{from, to}]; ok {
		s.mu.RUnlock()
		return r, nil
	}
	s.mu.RUnlock()

	r, err := s.bfs(from, to)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.cache[currencyPair{from, to}] = r
	s.cache[currencyPair{to, from}] = 1.0 / r
	s.mu.Unlock()
	return r, nil
}

// bfs searches for a conversion path from -> to under the read lock.
func (s *ExchangeRateStore) bfs(from, to Currency) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type node struct {
		ccy  Currency
		rate float64
	}
	visited := map[Currency]bool{from: true}
	queue := []node{{ccy: from, rate: 1.0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		// Forward edges: multiply.
		for next, r := range s.edges[cur.ccy] {
			if next == to {
				return cur.rate * r, nil
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, node{ccy: next, rate: cur.rate * r})
			}
		}

		// Reversed edges: divide.
		for src, outs := range s.edges {
			r, ok := outs[cur.ccy]
			if !ok {
				continue
			}
			if src == to {
				return cur.rate / r, nil
			}
			if !visited[src] {
				visited[src] = true
				queue = append(queue, node{ccy: src, rate: cur.rate / r})
			}
		}
	}
	return 0, fmt.Errorf("ExchangeRateStore.Rate: no conversion path %s->%s", from, to)
}

// Edges returns a copy of the direct spot edges.
func (s *ExchangeRateStore) Edges() map[Currency]map[Currency]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Currency]map[Currency]float64, len(s.edges))
	for from, tos := range s.edges {
		out[from] = make(map[Currency]float64, len(tos))
		for to, r := range tos {
			out[from][to] = r
		}
	}
	return out
}

// Clone returns a store with the same edges and an empty memo cache.
func (s *ExchangeRateStore) Clone() *ExchangeRateStore {
	out := NewExchangeRateStore()
	for from, tos := range s.Edges() {
		out.edges[from] = tos
	}
	return out
}
