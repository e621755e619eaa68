package ports

import (
	"context"
	"gps-route-service/internal/domain"
)

// Port: second-level storage for computed day aggregates.
// Entries are written once per day and never invalidated.
type ResultStore interface {
	// Return the stored aggregate for day; ok is false on a miss.
	Get(ctx context.Context, day domain.Day) (agg domain.DayAggregate, ok bool, err error)
	Put(ctx context.Context, agg domain.DayAggregate) error
}
