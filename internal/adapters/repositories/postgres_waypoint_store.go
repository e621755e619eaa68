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

	"github.com/jackc/pgx/v5/pgconn"
)

const pgForeignKeyViolation = "23503"

// Postgres/PostGIS-backed implementation of the WaypointStore port.
// It also evaluates day aggregation in SQL.
type PostgresWaypointStore struct{ DB *sql.DB }

var _ ports.DayLengthQuerier = (*PostgresWaypointStore)(nil)

func NewPostgresWaypointStore(db *sql.DB) *PostgresWaypointStore {
	return &PostgresWaypointStore{DB: db}
}

func (p *PostgresWaypointStore) AppendWaypoint(ctx context.Context, wp domain.Waypoint) (err error) {
	defer obs.Time(ctx, "postgres.AppendWaypoint")(&err)

	if p.DB == nil {
		return errors.New("postgres waypoint store: DB is nil")
	}

	query := `
	INSERT INTO waypoints (route_id, recorded_at, geom)
	VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326));
	`
	_, err = p.DB.ExecContext(ctx, query, int64(wp.RouteID), wp.RecordedAt, wp.Coords.Lon, wp.Coords.Lat)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("append waypoint route=%d: %w", wp.RouteID, domain.ErrRouteNotFound)
		}
		return fmt.Errorf("append waypoint route=%d: insert: %w", wp.RouteID, err)
	}

	return nil
}

func (p *PostgresWaypointStore) ListByRoute(ctx context.Context, id domain.RouteID) (_ []domain.Waypoint, err error) {
	defer obs.Time(ctx, "postgres.ListByRoute")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres waypoint store: DB is nil")
	}

	query := `
	SELECT
		waypoint_id,
		route_id,
		recorded_at,
		ST_X(geom),
		ST_Y(geom)
	FROM waypoints
	WHERE route_id = $1
	ORDER BY recorded_at, waypoint_id;
	`
	rows, err := p.DB.QueryContext(ctx, query, int64(id))
	if err != nil {
		return nil, fmt.Errorf("list waypoints route=%d: query waypoints table: %w", id, err)
	}
	return scanPostgresWaypoints(rows, fmt.Sprintf("list waypoints route=%d", id))
}

func (p *PostgresWaypointStore) ListInWindow(ctx context.Context, start, end time.Time) (_ []domain.Waypoint, err error) {
	defer obs.Time(ctx, "postgres.ListInWindow")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres waypoint store: DB is nil")
	}

	query := `
	SELECT
		waypoint_id,
		route_id,
		recorded_at,
		ST_X(geom),
		ST_Y(geom)
	FROM waypoints
	WHERE recorded_at >= $1 AND recorded_at < $2
	ORDER BY route_id, recorded_at, waypoint_id;
	`
	rows, err := p.DB.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list waypoints in window: query waypoints table: %w", err)
	}
	return scanPostgresWaypoints(rows, "list waypoints in window")
}

// Sum haversine segment lengths per route inside [start, end) and return the longest.
// Segments whose ends are not both in the window are excluded by filtering before lag().
func (p *PostgresWaypointStore) LongestInWindow(
	ctx context.Context,
	start, end time.Time,
	radiusKm float64,
) (_ domain.RouteID, _ float64, _ bool, err error) {
	defer obs.Time(ctx, "postgres.LongestInWindow")(&err)

	if p.DB == nil {
		return 0, 0, false, errors.New("postgres waypoint store: DB is nil")
	}

	query := `
	WITH pts AS (
		SELECT
			route_id,
			radians(ST_Y(geom)) AS lat,
			radians(ST_X(geom)) AS lon,
			lag(radians(ST_Y(geom))) OVER w AS prev_lat,
			lag(radians(ST_X(geom))) OVER w AS prev_lon
		FROM waypoints
		WHERE recorded_at >= $1 AND recorded_at < $2
		WINDOW w AS (PARTITION BY route_id ORDER BY recorded_at, waypoint_id)
	),
	segs AS (
		SELECT
			route_id,
			COALESCE(2 * $3::double precision * asin(LEAST(1, sqrt(
				power(sin((lat - prev_lat) / 2), 2) +
				cos(prev_lat) * cos(lat) * power(sin((lon - prev_lon) / 2), 2)
			))), 0) AS km
		FROM pts
	)
	SELECT route_id, SUM(km) AS total_km
	FROM segs
	GROUP BY route_id
	ORDER BY total_km DESC, route_id ASC
	LIMIT 1;
	`
	var id int64
	var km float64
	err = p.DB.QueryRowContext(ctx, query, start, end, radiusKm).Scan(&id, &km)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, fmt.Errorf("longest in window: query waypoints table: %w", err)
	}

	return domain.RouteID(id), km, true, nil
}

func scanPostgresWaypoints(rows *sql.Rows, op string) ([]domain.Waypoint, error) {
	defer rows.Close()

	out := make([]domain.Waypoint, 0, 64)
	for rows.Next() {
		var seq, routeID int64
		var recordedAt time.Time
		var lon, lat float64
		if err := rows.Scan(&seq, &routeID, &recordedAt, &lon, &lat); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		out = append(out, domain.Waypoint{
			RouteID:    domain.RouteID(routeID),
			Coords:     domain.Coordinates{Lon: lon, Lat: lat},
			RecordedAt: recordedAt,
			Seq:        seq,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: row iteration: %w", op, err)
	}

	return out, nil
}
