package services

import (
	"context"
	"errors"
	"fmt"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/platform/metrics"
	"gps-route-service/internal/platform/obs"
	"gps-route-service/internal/ports"
	"time"
)

// WaypointLedger accepts waypoints for routes that are still open.
// A route is open only on the calendar day it was created.
type WaypointLedger struct {
	Routes ports.RouteRepository
	Store  ports.WaypointStore
	Clock  ports.Clock
}

func NewWaypointLedger(routes ports.RouteRepository, store ports.WaypointStore, clock ports.Clock) *WaypointLedger {
	return &WaypointLedger{Routes: routes, Store: store, Clock: clock}
}

// Admission is an open route together with the instant it was found open.
// Waypoints appended under an admission are timestamped with At.
type Admission struct {
	Route domain.Route
	At    time.Time
}

// Admit checks that route id exists and was created today.
// It returns domain.ErrRouteNotFound or domain.ErrStaleRoute otherwise.
func (l *WaypointLedger) Admit(ctx context.Context, id domain.RouteID) (Admission, error) {
	return l.admitAt(ctx, id, l.Clock.Now())
}

func (l *WaypointLedger) admitAt(ctx context.Context, id domain.RouteID, now time.Time) (Admission, error) {
	route, err := l.Routes.GetRoute(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRouteNotFound) {
			metrics.WaypointsTotal.WithLabelValues("not_found").Inc()
		}
		return Admission{}, fmt.Errorf("admit waypoint route=%d: %w", id, err)
	}

	loc := l.Clock.Location()
	if route.CreationDay(loc).Before(domain.DayOf(now.In(loc))) {
		metrics.WaypointsTotal.WithLabelValues("stale").Inc()
		return Admission{}, fmt.Errorf("admit waypoint route=%d created=%s: %w", id, route.CreationDay(loc), domain.ErrStaleRoute)
	}

	return Admission{Route: route, At: now}, nil
}

// AddWaypoint validates and appends a waypoint timestamped "now".
// Staleness is checked before the coordinates, so a stale route is rejected
// as stale whatever the payload.
func (l *WaypointLedger) AddWaypoint(ctx context.Context, id domain.RouteID, coords domain.Coordinates) (err error) {
	defer obs.Time(ctx, "ledger.AddWaypoint")(&err)

	adm, err := l.admitAt(ctx, id, l.Clock.Now())
	if err != nil {
		return err
	}
	return l.appendAdmitted(ctx, adm, coords)
}

// Append validates coords and appends them to an admitted route.
func (l *WaypointLedger) Append(ctx context.Context, adm Admission, coords domain.Coordinates) (err error) {
	defer obs.Time(ctx, "ledger.Append")(&err)

	return l.appendAdmitted(ctx, adm, coords)
}

func (l *WaypointLedger) appendAdmitted(ctx context.Context, adm Admission, coords domain.Coordinates) error {
	id := adm.Route.ID
	if err := coords.Validate(); err != nil {
		metrics.WaypointsTotal.WithLabelValues("invalid").Inc()
		return fmt.Errorf("add waypoint route=%d: %w", id, err)
	}

	wp := domain.Waypoint{
		RouteID:    id,
		Coords:     coords,
		RecordedAt: adm.At,
	}
	if err := l.Store.AppendWaypoint(ctx, wp); err != nil {
		metrics.WaypointsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("add waypoint route=%d: append: %w", id, err)
	}

	metrics.WaypointsTotal.WithLabelValues("accepted").Inc()
	return nil
}
