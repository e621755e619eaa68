package services

import (
	"context"
	"fmt"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/ports"
)

// LongestRouteQuery answers longest-route requests for days strictly before today.
type LongestRouteQuery struct {
	Cache DayComputerCache
	Clock ports.Clock
}

// DayComputerCache is the memoizing front of the aggregator. ResultCache implements it.
type DayComputerCache interface {
	GetOrCompute(ctx context.Context, day domain.Day) (domain.DayAggregate, error)
}

func NewLongestRouteQuery(cache DayComputerCache, clock ports.Clock) *LongestRouteQuery {
	return &LongestRouteQuery{Cache: cache, Clock: clock}
}

// Longest rejects today and future days with domain.ErrFutureOrPresentDate
// before consulting the cache.
func (q *LongestRouteQuery) Longest(ctx context.Context, day domain.Day) (domain.DayAggregate, error) {
	today := domain.DayOf(q.Clock.Now().In(q.Clock.Location()))
	if !day.Before(today) {
		return domain.DayAggregate{}, fmt.Errorf("longest route for %s (today %s): %w", day, today, domain.ErrFutureOrPresentDate)
	}

	return q.Cache.GetOrCompute(ctx, day)
}
