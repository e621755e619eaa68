package services

import (
	"gps-route-service/internal/adapters/memory"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/platform/clock"
	"testing"
	"time"
)

var today = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

var brazilToBaltic = []domain.Coordinates{
	{Lon: -49.3124416, Lat: -25.4025905},
	{Lon: -46.634971, Lat: -23.559798},
	{Lon: 17.70188, Lat: 59.3258414},
	{Lon: 18.591889, Lat: 54.273901},
}

type fixture struct {
	store *memory.Store
	clock *clock.Fixed
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{store: memory.NewStore(), clock: clock.NewFixed(today)}
}

// seedRoute creates a route at createdAt with one waypoint per coordinate,
// spaced a minute apart starting at createdAt.
func (f *fixture) seedRoute(createdAt time.Time, coords ...domain.Coordinates) domain.RouteID {
	wps := make([]domain.Waypoint, 0, len(coords))
	for i, c := range coords {
		wps = append(wps, domain.Waypoint{Coords: c, RecordedAt: createdAt.Add(time.Duration(i) * time.Minute)})
	}
	return f.store.Seed(createdAt, wps...)
}

func mustDay(t *testing.T, s string) domain.Day {
	t.Helper()
	d, err := domain.ParseDay(s)
	if err != nil {
		t.Fatalf("parse day %q: %v", s, err)
	}
	return d
}
