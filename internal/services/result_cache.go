package services

import (
	"context"
	"errors"
	"fmt"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/platform/metrics"
	"gps-route-service/internal/platform/obs"
	"gps-route-service/internal/ports"
	"sync"

	"golang.org/x/sync/singleflight"
)

// DayComputer produces the longest route of a day. DailyAggregator implements it.
type DayComputer interface {
	LongestRouteForDay(ctx context.Context, day domain.Day) (domain.DayAggregate, error)
}

// ResultCache memoizes day aggregates.
//
// Entries are never evicted. Days without data are not cached and are
// recomputed on every query.
//
// An optional ResultStore acts as a shared second level that survives restarts.
// The cache is safe for concurrent use; concurrent misses for the same day
// share one computation.
type ResultCache struct {
	compute DayComputer
	store   ports.ResultStore

	mu      sync.RWMutex
	entries map[domain.Day]domain.DayAggregate

	group singleflight.Group
}

func NewResultCache(compute DayComputer, store ports.ResultStore) *ResultCache {
	return &ResultCache{
		compute: compute,
		store:   store,
		entries: make(map[domain.Day]domain.DayAggregate),
	}
}

// GetOrCompute returns the cached aggregate for day, computing and storing it on a miss.
func (c *ResultCache) GetOrCompute(ctx context.Context, day domain.Day) (domain.DayAggregate, error) {
	if agg, ok := c.lookup(day); ok {
		metrics.ResultCacheHits.WithLabelValues("memory").Inc()
		return agg, nil
	}

	// The shared computation outlives any single caller; each caller stops
	// waiting when its own ctx ends.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(day.String(), func() (any, error) {
		ctx := shared

		if agg, ok := c.lookup(day); ok {
			return agg, nil
		}

		if c.store != nil {
			agg, ok, err := c.store.Get(ctx, day)
			if err != nil {
				obs.Ctx(ctx).Warn().Err(err).Str("day", day.String()).Msg("result store read failed")
			} else if ok {
				metrics.ResultCacheHits.WithLabelValues("store").Inc()
				c.remember(agg)
				return agg, nil
			}
		}

		metrics.ResultCacheMisses.Inc()

		agg, err := c.compute.LongestRouteForDay(ctx, day)
		if err != nil {
			return domain.DayAggregate{}, err
		}
		agg.Day = day

		c.remember(agg)
		if c.store != nil {
			if err := c.store.Put(ctx, agg); err != nil {
				obs.Ctx(ctx).Warn().Err(err).Str("day", day.String()).Msg("result store write failed")
			}
		}
		return agg, nil
	})

	select {
	case <-ctx.Done():
		return domain.DayAggregate{}, fmt.Errorf("result cache %s: %w", day, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			if errors.Is(res.Err, domain.ErrNoDataForDay) {
				return domain.DayAggregate{}, res.Err
			}
			return domain.DayAggregate{}, fmt.Errorf("result cache %s: %w", day, res.Err)
		}
		return res.Val.(domain.DayAggregate), nil
	}
}

// Prime stores agg without computing it.
func (c *ResultCache) Prime(agg domain.DayAggregate) {
	c.remember(agg)
}

// Len returns the number of cached days.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every in-memory entry. The second-level store is untouched.
func (c *ResultCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[domain.Day]domain.DayAggregate)
}

func (c *ResultCache) lookup(day domain.Day) (domain.DayAggregate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	agg, ok := c.entries[day]
	return agg, ok
}

func (c *ResultCache) remember(agg domain.DayAggregate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[agg.Day] = agg
}
