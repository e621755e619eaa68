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

// Advisory lock key guarding route id allocation.
const routeIDLockKey int64 = 0x726f757465 // "route"

// Postgres-backed implementation of the RouteRepository port.
type PostgresRouteRepository struct{ DB *sql.DB }

var _ ports.RouteRepository = (*PostgresRouteRepository)(nil)

func NewPostgresRouteRepository(db *sql.DB) *PostgresRouteRepository {
	return &PostgresRouteRepository{DB: db}
}

// Allocate max(route_id)+1 under a transaction-scoped advisory lock.
func (p *PostgresRouteRepository) CreateRoute(ctx context.Context, createdAt time.Time) (_ domain.Route, err error) {
	defer obs.Time(ctx, "postgres.CreateRoute")(&err)

	if p.DB == nil {
		return domain.Route{}, errors.New("postgres route repository: DB is nil")
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.Route{}, fmt.Errorf("create route: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1);`, routeIDLockKey); err != nil {
		return domain.Route{}, fmt.Errorf("create route: advisory lock: %w", err)
	}

	query := `
	INSERT INTO routes (route_id, created_at, length_km)
	SELECT COALESCE(MAX(route_id) + 1, 0), $1, 0 FROM routes
	RETURNING route_id;
	`
	var id int64
	if err := tx.QueryRowContext(ctx, query, createdAt).Scan(&id); err != nil {
		return domain.Route{}, fmt.Errorf("create route: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Route{}, fmt.Errorf("create route: commit tx: %w", err)
	}

	return domain.Route{ID: domain.RouteID(id), CreatedAt: createdAt}, nil
}

func (p *PostgresRouteRepository) GetRoute(ctx context.Context, id domain.RouteID) (_ domain.Route, err error) {
	defer obs.Time(ctx, "postgres.GetRoute")(&err)

	if p.DB == nil {
		return domain.Route{}, errors.New("postgres route repository: DB is nil")
	}

	query := `
	SELECT
		created_at,
		length_km
	FROM routes
	WHERE route_id = $1;
	`
	var createdAt time.Time
	var km float64
	err = p.DB.QueryRowContext(ctx, query, int64(id)).Scan(&createdAt, &km)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Route{}, fmt.Errorf("get route %d: %w", id, domain.ErrRouteNotFound)
	}
	if err != nil {
		return domain.Route{}, fmt.Errorf("get route %d: query routes table: %w", id, err)
	}

	return domain.Route{ID: id, CreatedAt: createdAt, LengthKm: km}, nil
}

func (p *PostgresRouteRepository) UpdateRouteLength(ctx context.Context, id domain.RouteID, km float64) error {
	if p.DB == nil {
		return errors.New("postgres route repository: DB is nil")
	}

	res, err := p.DB.ExecContext(ctx, `UPDATE routes SET length_km = $1 WHERE route_id = $2;`, km, int64(id))
	if err != nil {
		return fmt.Errorf("update route length %d: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("update route length %d", id))
}
