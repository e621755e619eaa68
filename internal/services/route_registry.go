package services

import (
	"context"
	"errors"
	"fmt"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/platform/metrics"
	"gps-route-service/internal/platform/obs"
	"gps-route-service/internal/ports"
)

// RouteRegistry allocates route identities and records their creation day.
type RouteRegistry struct {
	Routes ports.RouteRepository
	Clock  ports.Clock
}

func NewRouteRegistry(routes ports.RouteRepository, clock ports.Clock) *RouteRegistry {
	return &RouteRegistry{Routes: routes, Clock: clock}
}

// CreateRoute issues a never-before-used id and durably records the route
// with creation time "now" and zero length. Uniqueness is delegated to the
// repository's atomic allocation.
func (r *RouteRegistry) CreateRoute(ctx context.Context) (_ domain.Route, err error) {
	defer obs.Time(ctx, "registry.CreateRoute")(&err)

	if r.Routes == nil || r.Clock == nil {
		return domain.Route{}, errors.New("create route: registry is not wired")
	}

	route, err := r.Routes.CreateRoute(ctx, r.Clock.Now())
	if err != nil {
		return domain.Route{}, fmt.Errorf("create route: %w", err)
	}

	metrics.RoutesCreated.Inc()
	obs.Ctx(ctx).Debug().Int64("route_id", int64(route.ID)).Msg("route created")

	return route, nil
}
