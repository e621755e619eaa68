package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/platform/obs"
	"gps-route-service/internal/ports"
)

// SQLite backed store of computed day aggregates.
// Days are keyed by their YYYY-MM-DD form.
type SqliteResultStore struct {
	DB *sql.DB
}

var _ ports.ResultStore = (*SqliteResultStore)(nil)

func NewSqliteResultStore(db *sql.DB) *SqliteResultStore {
	return &SqliteResultStore{DB: db}
}

// Fetch the stored aggregate for one day.
func (s *SqliteResultStore) Get(ctx context.Context, day domain.Day) (_ domain.DayAggregate, _ bool, err error) {
	defer obs.Time(ctx, "result.store.Get")(&err)

	if s.DB == nil {
		return domain.DayAggregate{}, false, errors.New("result store: db is nil")
	}

	q := `
	SELECT route_id, total_km
	FROM day_results
	WHERE day = ?;
	`

	var id int64
	var km float64
	err = s.DB.QueryRowContext(ctx, q, day.String()).Scan(&id, &km)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DayAggregate{}, false, nil
	}
	if err != nil {
		return domain.DayAggregate{}, false, fmt.Errorf("get day result %s: query day_results table: %w", day, err)
	}

	return domain.DayAggregate{Day: day, RouteID: domain.RouteID(id), TotalKm: km}, true, nil
}

// Store the aggregate of one day, replacing any previous value.
func (s *SqliteResultStore) Put(ctx context.Context, agg domain.DayAggregate) error {
	if s.DB == nil {
		return errors.New("result store: db is nil")
	}

	if agg.Day.IsZero() {
		return errors.New("insert day result: day must not be empty")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO day_results (day, route_id, total_km)
	VALUES (?, ?, ?);
	`, agg.Day.String(), int64(agg.RouteID), agg.TotalKm)
	if err != nil {
		return fmt.Errorf("insert day result %s: %w", agg.Day, err)
	}

	return nil
}
