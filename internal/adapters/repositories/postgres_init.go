package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema. Requires the PostGIS extension to be installable.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis;`,
		`
	CREATE TABLE IF NOT EXISTS routes (
		route_id BIGINT PRIMARY KEY CHECK (route_id >= 0),
		created_at TIMESTAMPTZ NOT NULL,
		length_km DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS waypoints (
		waypoint_id BIGSERIAL PRIMARY KEY,
		route_id BIGINT NOT NULL REFERENCES routes(route_id),
		recorded_at TIMESTAMPTZ NOT NULL,
		geom geometry(Point, 4326) NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS day_results (
		day DATE PRIMARY KEY,
		route_id BIGINT NOT NULL,
		total_km DOUBLE PRECISION NOT NULL
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_waypoints_route_recorded
	ON waypoints(route_id, recorded_at, waypoint_id);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_waypoints_recorded
	ON waypoints(recorded_at);
	`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
