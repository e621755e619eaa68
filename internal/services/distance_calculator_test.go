package services

import (
	"context"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/geo"
	"math"
	"math/rand"
	"sort"
	"testing"
	"time"
)

func TestDistanceCalculatorKnownRoute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := NewRouteRegistry(f.store, f.clock)
	ledger := NewWaypointLedger(f.store, f.store, f.clock)
	calc := NewDistanceCalculator(f.store, f.store)

	r, _ := reg.CreateRoute(ctx)
	for _, c := range brazilToBaltic {
		f.clock.Advance(time.Second)
		if err := ledger.AddWaypoint(ctx, r.ID, c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := calc.ComputeLength(ctx, r.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Km <= 11750 || got.Km >= 11900 {
		t.Fatalf("length = %.2f km, want in (11750, 11900)", got.Km)
	}
	if got.Waypoints != 4 {
		t.Fatalf("waypoints = %d, want 4", got.Waypoints)
	}

	stored, _ := f.store.GetRoute(ctx, r.ID)
	if stored.LengthKm != got.Km {
		t.Fatalf("stored length = %v, want %v", stored.LengthKm, got.Km)
	}
}

func TestDistanceCalculatorDegenerate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	calc := NewDistanceCalculator(f.store, f.store)

	empty := f.seedRoute(today)
	single := f.seedRoute(today, brazilToBaltic[0])

	tests := []struct {
		id        domain.RouteID
		waypoints int
	}{
		{empty, 0},
		{single, 1},
		{99, 0}, // unknown route
	}
	for _, tt := range tests {
		got, err := calc.ComputeLength(ctx, tt.id)
		if err != nil {
			t.Fatalf("route %d: unexpected error: %v", tt.id, err)
		}
		if got.Km != 0 || got.Waypoints != tt.waypoints {
			t.Fatalf("route %d: got %+v, want 0 km and %d waypoints", tt.id, got, tt.waypoints)
		}
	}
}

// Waypoints are appended out of chronological order; the calculator must
// follow timestamps, with insertion order breaking exact ties.
func TestDistanceCalculatorOrdersByTimestamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	calc := NewDistanceCalculator(f.store, nil)
	id := f.seedRoute(today)

	r := rand.New(rand.NewSource(42))
	raw := make([]domain.Waypoint, 0, 40)
	for i := 0; i < 40; i++ {
		raw = append(raw, domain.Waypoint{
			RouteID: id,
			Coords:  domain.Coordinates{Lon: r.Float64()*360 - 180, Lat: r.Float64()*180 - 90},
			// Pairs share a timestamp to exercise the tie-break.
			RecordedAt: today.Add(time.Duration(i/2) * time.Second),
		})
	}

	order := r.Perm(len(raw))
	inserted := make([]domain.Waypoint, 0, len(raw))
	for _, i := range order {
		if err := f.store.AppendWaypoint(ctx, raw[i]); err != nil {
			t.Fatalf("append: %v", err)
		}
		inserted = append(inserted, raw[i])
	}

	// Independent recomputation: stable sort of the insertion sequence by timestamp.
	sort.SliceStable(inserted, func(i, j int) bool {
		return inserted[i].RecordedAt.Before(inserted[j].RecordedAt)
	})
	want := 0.0
	for i := 1; i < len(inserted); i++ {
		want += geo.HaversineKm(inserted[i-1].Coords, inserted[i].Coords)
	}

	got, err := calc.ComputeLength(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got.Km-want) > 1e-6 {
		t.Fatalf("length = %v, want %v", got.Km, want)
	}
}
