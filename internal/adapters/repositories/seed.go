package repositories

import (
	"context"
	"errors"
	"fmt"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/ports"
	"time"
)

// BootstrapRouteDate is the creation instant of the bootstrap route.
var BootstrapRouteDate = time.Date(1984, 1, 28, 0, 0, 0, 0, time.UTC)

// BootstrapWaypoints are the two waypoints recorded on the bootstrap route, one second apart.
var BootstrapWaypoints = []domain.Coordinates{
	{Lon: -82.45843, Lat: 27.94752},
	{Lon: -89.11673, Lat: 32.77152},
}

// SeedBootstrap creates route 0 with the bootstrap waypoints when no route exists yet.
// It reports whether anything was written.
func SeedBootstrap(ctx context.Context, routes ports.RouteRepository, store ports.WaypointStore) (bool, error) {
	if routes == nil || store == nil {
		return false, errors.New("seed bootstrap: repository is nil")
	}

	if _, err := routes.GetRoute(ctx, 0); err == nil {
		return false, nil
	} else if !errors.Is(err, domain.ErrRouteNotFound) {
		return false, fmt.Errorf("seed bootstrap: check existing routes: %w", err)
	}

	route, err := routes.CreateRoute(ctx, BootstrapRouteDate)
	if err != nil {
		return false, fmt.Errorf("seed bootstrap: create route: %w", err)
	}

	for i, c := range BootstrapWaypoints {
		wp := domain.Waypoint{
			RouteID:    route.ID,
			Coords:     c,
			RecordedAt: BootstrapRouteDate.Add(time.Duration(i) * time.Second),
		}
		if err := store.AppendWaypoint(ctx, wp); err != nil {
			return false, fmt.Errorf("seed bootstrap: append waypoint #%d: %w", i+1, err)
		}
	}

	return true, nil
}
