package services

import (
	"context"
	"fmt"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/geo"
	"gps-route-service/internal/platform/obs"
	"gps-route-service/internal/ports"
)

// DistanceCalculator computes the great-circle length of a route.
type DistanceCalculator struct {
	Store ports.WaypointStore
	// Routes is optional. When set, computed lengths are written back to the route record.
	Routes ports.RouteRepository
}

func NewDistanceCalculator(store ports.WaypointStore, routes ports.RouteRepository) *DistanceCalculator {
	return &DistanceCalculator{Store: store, Routes: routes}
}

// ComputeLength sums the distances between chronologically consecutive
// waypoints. Routes with zero or one waypoint have length 0; Waypoints in the
// result tells the two cases apart.
func (c *DistanceCalculator) ComputeLength(ctx context.Context, id domain.RouteID) (_ domain.RouteLength, err error) {
	defer obs.Time(ctx, "distance.ComputeLength")(&err)

	wps, err := c.Path(ctx, id)
	if err != nil {
		return domain.RouteLength{}, err
	}

	km := geo.PathKm(coordsOf(wps))

	if c.Routes != nil && len(wps) > 0 {
		if err := c.Routes.UpdateRouteLength(ctx, id, km); err != nil {
			obs.Ctx(ctx).Warn().Err(err).Int64("route_id", int64(id)).Msg("route length write failed")
		}
	}

	return domain.RouteLength{RouteID: id, Km: km, Waypoints: len(wps)}, nil
}

// Path returns the waypoints of a route in travel order.
func (c *DistanceCalculator) Path(ctx context.Context, id domain.RouteID) ([]domain.Waypoint, error) {
	wps, err := c.Store.ListByRoute(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("route path route=%d: %w", id, err)
	}
	return wps, nil
}

func coordsOf(wps []domain.Waypoint) []domain.Coordinates {
	out := make([]domain.Coordinates, len(wps))
	for i, wp := range wps {
		out[i] = wp.Coords
	}
	return out
}
