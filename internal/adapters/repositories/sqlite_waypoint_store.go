package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/platform/obs"
	"gps-route-service/internal/ports"
	"time"
)

// SQLite-backed implementation of the WaypointStore port.
// Day aggregation runs in process; SQLite builds are not guaranteed to ship math functions.
type SqliteWaypointStore struct{ DB *sql.DB }

var _ ports.WaypointStore = (*SqliteWaypointStore)(nil)

func NewSqliteWaypointStore(db *sql.DB) *SqliteWaypointStore {
	return &SqliteWaypointStore{DB: db}
}

// Append a waypoint; the insert only happens when the route exists.
func (s *SqliteWaypointStore) AppendWaypoint(ctx context.Context, wp domain.Waypoint) (err error) {
	defer obs.Time(ctx, "sqlite.AppendWaypoint")(&err)

	if s.DB == nil {
		return errors.New("sqlite waypoint store: DB is nil")
	}

	query := `
	INSERT INTO waypoints (route_id, recorded_at, lon, lat)
	SELECT ?, ?, ?, ?
	WHERE EXISTS (SELECT 1 FROM routes WHERE route_id = ?);
	`
	res, err := s.DB.ExecContext(ctx, query,
		int64(wp.RouteID), wp.RecordedAt.UnixNano(), wp.Coords.Lon, wp.Coords.Lat, int64(wp.RouteID))
	if err != nil {
		return fmt.Errorf("append waypoint route=%d: insert: %w", wp.RouteID, err)
	}
	return requireAffected(res, fmt.Sprintf("append waypoint route=%d", wp.RouteID))
}

// Return the waypoints of one route ordered by (recorded_at, insertion).
func (s *SqliteWaypointStore) ListByRoute(ctx context.Context, id domain.RouteID) (_ []domain.Waypoint, err error) {
	defer obs.Time(ctx, "sqlite.ListByRoute")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite waypoint store: DB is nil")
	}

	query := `
	SELECT
		waypoint_id,
		route_id,
		recorded_at,
		lon,
		lat
	FROM waypoints
	WHERE route_id = ?
	ORDER BY recorded_at, waypoint_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, int64(id))
	if err != nil {
		return nil, fmt.Errorf("list waypoints route=%d: query waypoints table: %w", id, err)
	}
	return scanSqliteWaypoints(rows, fmt.Sprintf("list waypoints route=%d", id))
}

// Return every waypoint recorded in [start, end), ordered by route then time.
func (s *SqliteWaypointStore) ListInWindow(ctx context.Context, start, end time.Time) (_ []domain.Waypoint, err error) {
	defer obs.Time(ctx, "sqlite.ListInWindow")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite waypoint store: DB is nil")
	}

	query := `
	SELECT
		waypoint_id,
		route_id,
		recorded_at,
		lon,
		lat
	FROM waypoints
	WHERE recorded_at >= ? AND recorded_at < ?
	ORDER BY route_id, recorded_at, waypoint_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, start.UnixNano(), end.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("list waypoints in window: query waypoints table: %w", err)
	}
	return scanSqliteWaypoints(rows, "list waypoints in window")
}

func scanSqliteWaypoints(rows *sql.Rows, op string) ([]domain.Waypoint, error) {
	defer rows.Close()

	out := make([]domain.Waypoint, 0, 64)
	for rows.Next() {
		var seq, routeID, nanos int64
		var lon, lat float64
		if err := rows.Scan(&seq, &routeID, &nanos, &lon, &lat); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		out = append(out, domain.Waypoint{
			RouteID:    domain.RouteID(routeID),
			Coords:     domain.Coordinates{Lon: lon, Lat: lat},
			RecordedAt: time.Unix(0, nanos).UTC(),
			Seq:        seq,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: row iteration: %w", op, err)
	}

	return out, nil
}
