package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
// Timestamps are stored as unix nanoseconds; coordinates as REAL columns.
func InitSQLiteSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init sqlite schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init sqlite schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		route_id INTEGER PRIMARY KEY CHECK (route_id >= 0),
		created_at INTEGER NOT NULL,
		length_km REAL NOT NULL DEFAULT 0
	);
	`

	createWaypointsQuery := `
	CREATE TABLE IF NOT EXISTS waypoints (
		waypoint_id INTEGER PRIMARY KEY AUTOINCREMENT,
		route_id INTEGER NOT NULL REFERENCES routes(route_id),
		recorded_at INTEGER NOT NULL,
		lon REAL NOT NULL,
		lat REAL NOT NULL
	);
	`

	createDayResultsQuery := `
	CREATE TABLE IF NOT EXISTS day_results (
		day TEXT PRIMARY KEY,
		route_id INTEGER NOT NULL,
		total_km REAL NOT NULL
	);
	`

	createRouteIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_waypoints_route_recorded
	ON waypoints(route_id, recorded_at, waypoint_id);
	`

	createWindowIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_waypoints_recorded
	ON waypoints(recorded_at);
	`

	statements := []string{
		createRoutesQuery,
		createWaypointsQuery,
		createDayResultsQuery,
		createRouteIndexQuery,
		createWindowIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init sqlite schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init sqlite schema: commit tx: %w", err)
	}

	return nil
}
