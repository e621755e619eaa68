package ports

import (
	"context"
	"gps-route-service/internal/domain"
	"time"
)

// Port: append-only storage of waypoints.
type WaypointStore interface {
	// Append a waypoint. Appending to an unknown route returns domain.ErrRouteNotFound.
	AppendWaypoint(ctx context.Context, wp domain.Waypoint) error
	// Return all waypoints of a route ordered by (RecordedAt, Seq).
	ListByRoute(ctx context.Context, id domain.RouteID) ([]domain.Waypoint, error)
	// Return waypoints with start <= RecordedAt < end, ordered by (RouteID, RecordedAt, Seq).
	ListInWindow(ctx context.Context, start, end time.Time) ([]domain.Waypoint, error)
}

// Optional extension of WaypointStore that evaluates the longest route of a
// window inside the datastore. ok is false when the window holds no waypoints.
// Distances must use radiusKm so results match in-process aggregation.
type DayLengthQuerier interface {
	WaypointStore
	LongestInWindow(ctx context.Context, start, end time.Time, radiusKm float64) (id domain.RouteID, km float64, ok bool, err error)
}
