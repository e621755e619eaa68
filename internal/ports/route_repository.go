package ports

import (
	"context"
	"gps-route-service/internal/domain"
	"time"
)

// Port: durable record of routes and their creation time.
type RouteRepository interface {
	// Allocate the next route id (max+1, or 0 when empty) and record it with
	// createdAt as a single atomic step.
	CreateRoute(ctx context.Context, createdAt time.Time) (domain.Route, error)
	// Return the route, or domain.ErrRouteNotFound.
	GetRoute(ctx context.Context, id domain.RouteID) (domain.Route, error)
	// Store the most recently computed length of a route.
	UpdateRouteLength(ctx context.Context, id domain.RouteID, km float64) error
}
