package memory

import (
	"context"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/ports"
	"sync"
)

// ResultStore keeps day aggregates in a map. It stands in for the shared
// stores (SQL, Redis) in tests and single-process runs.
type ResultStore struct {
	mu   sync.RWMutex
	m    map[domain.Day]domain.DayAggregate
	puts int
}

var _ ports.ResultStore = (*ResultStore)(nil)

func NewResultStore() *ResultStore {
	return &ResultStore{m: make(map[domain.Day]domain.DayAggregate)}
}

func (r *ResultStore) Get(ctx context.Context, day domain.Day) (domain.DayAggregate, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agg, ok := r.m[day]
	return agg, ok, nil
}

func (r *ResultStore) Put(ctx context.Context, agg domain.DayAggregate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[agg.Day] = agg
	r.puts++
	return nil
}

// Puts returns how many writes the store received.
func (r *ResultStore) Puts() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.puts
}
