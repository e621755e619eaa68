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

// SQLite-backed implementation of the RouteRepository port.
// The database must be opened with a single connection so id allocation is serialized.
type SqliteRouteRepository struct{ DB *sql.DB }

var _ ports.RouteRepository = (*SqliteRouteRepository)(nil)

func NewSqliteRouteRepository(db *sql.DB) *SqliteRouteRepository {
	return &SqliteRouteRepository{DB: db}
}

// Allocate the next route id and store the route in one statement.
func (s *SqliteRouteRepository) CreateRoute(ctx context.Context, createdAt time.Time) (_ domain.Route, err error) {
	defer obs.Time(ctx, "sqlite.CreateRoute")(&err)

	if s.DB == nil {
		return domain.Route{}, errors.New("sqlite route repository: DB is nil")
	}

	query := `
	INSERT INTO routes (route_id, created_at, length_km)
	SELECT COALESCE(MAX(route_id) + 1, 0), ?, 0 FROM routes
	RETURNING route_id;
	`
	var id int64
	if err := s.DB.QueryRowContext(ctx, query, createdAt.UnixNano()).Scan(&id); err != nil {
		return domain.Route{}, fmt.Errorf("create route: insert: %w", err)
	}

	return domain.Route{ID: domain.RouteID(id), CreatedAt: createdAt}, nil
}

func (s *SqliteRouteRepository) GetRoute(ctx context.Context, id domain.RouteID) (_ domain.Route, err error) {
	defer obs.Time(ctx, "sqlite.GetRoute")(&err)

	if s.DB == nil {
		return domain.Route{}, errors.New("sqlite route repository: DB is nil")
	}

	query := `
	SELECT
		created_at,
		length_km
	FROM routes
	WHERE route_id = ?;
	`
	var nanos int64
	var km float64
	err = s.DB.QueryRowContext(ctx, query, int64(id)).Scan(&nanos, &km)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Route{}, fmt.Errorf("get route %d: %w", id, domain.ErrRouteNotFound)
	}
	if err != nil {
		return domain.Route{}, fmt.Errorf("get route %d: query routes table: %w", id, err)
	}

	return domain.Route{ID: id, CreatedAt: time.Unix(0, nanos).UTC(), LengthKm: km}, nil
}

func (s *SqliteRouteRepository) UpdateRouteLength(ctx context.Context, id domain.RouteID, km float64) error {
	if s.DB == nil {
		return errors.New("sqlite route repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE routes SET length_km = ? WHERE route_id = ?;`, km, int64(id))
	if err != nil {
		return fmt.Errorf("update route length %d: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("update route length %d", id))
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrRouteNotFound)
	}
	return nil
}
