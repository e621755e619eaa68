package services

import (
	"context"
	"errors"
	"gps-route-service/internal/domain"
	"testing"
	"time"
)

func TestLongestRouteQueryRejectsTodayAndFuture(t *testing.T) {
	comp := &countingComputer{fn: fixedResult(0, 1)}
	f := newFixture(t)
	q := NewLongestRouteQuery(NewResultCache(comp, nil), f.clock)

	for _, s := range []string{"2026-10-14", "2026-10-15", "2030-01-01"} {
		_, err := q.Longest(context.Background(), mustDay(t, s))
		if !errors.Is(err, domain.ErrFutureOrPresentDate) {
			t.Fatalf("%s: err = %v, want ErrFutureOrPresentDate", s, err)
		}
	}
	if n := comp.calls.Load(); n != 0 {
		t.Fatalf("computations = %d, want 0", n)
	}
}

func TestLongestRouteQueryEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedRoute(today.Add(-24*time.Hour), brazilToBaltic...)

	q := NewLongestRouteQuery(NewResultCache(NewDailyAggregator(f.store, time.UTC), nil), f.clock)

	got, err := q.Longest(ctx, mustDay(t, "2026-10-13"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RouteID != id || got.TotalKm <= 11750 || got.TotalKm >= 11900 {
		t.Fatalf("got %+v", got)
	}

	if _, err := q.Longest(ctx, mustDay(t, "2026-10-12")); !errors.Is(err, domain.ErrNoDataForDay) {
		t.Fatalf("err = %v, want ErrNoDataForDay", err)
	}
}

// Today is evaluated in the clock's location: 02:00 UTC on the 14th is still
// the 13th in UTC-5, so the 13th is not yet in the past there.
func TestLongestRouteQueryTodayFollowsClockLocation(t *testing.T) {
	west := time.FixedZone("UTC-5", -5*60*60)
	f := newFixture(t)
	f.clock.Set(time.Date(2026, 10, 14, 2, 0, 0, 0, time.UTC).In(west))

	q := NewLongestRouteQuery(NewResultCache(&countingComputer{fn: fixedResult(0, 1)}, nil), f.clock)
	if _, err := q.Longest(context.Background(), mustDay(t, "2026-10-13")); !errors.Is(err, domain.ErrFutureOrPresentDate) {
		t.Fatalf("err = %v, want ErrFutureOrPresentDate", err)
	}
	if _, err := q.Longest(context.Background(), mustDay(t, "2026-10-12")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
