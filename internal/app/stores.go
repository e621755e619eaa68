// Package app builds the storage graph selected by configuration.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"gps-route-service/internal/adapters/cache"
	"gps-route-service/internal/adapters/memory"
	"gps-route-service/internal/adapters/repositories"
	"gps-route-service/internal/config"
	"gps-route-service/internal/platform/db"
	"gps-route-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

// Stores groups the adapters behind the ports for one configured backend.
type Stores struct {
	Routes    ports.RouteRepository
	Waypoints ports.WaypointStore
	// Results is nil when no second-level result store is configured.
	Results ports.ResultStore

	driver  string
	db      *sql.DB
	closers []func() error
}

// OpenStores connects the configured database and result store.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	s := &Stores{driver: cfg.Database.Driver}

	switch cfg.Database.Driver {
	case "postgres":
		conn, err := db.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("open stores: %w", err)
		}
		s.db = conn
		s.closers = append(s.closers, conn.Close)
		s.Routes = repositories.NewPostgresRouteRepository(conn)
		s.Waypoints = repositories.NewPostgresWaypointStore(conn)

	case "sqlite":
		conn, err := db.OpenSQLite(ctx, cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open stores: %w", err)
		}
		s.db = conn
		s.closers = append(s.closers, conn.Close)
		s.Routes = repositories.NewSqliteRouteRepository(conn)
		s.Waypoints = repositories.NewSqliteWaypointStore(conn)

	case "memory":
		m := memory.NewStore()
		s.Routes = m
		s.Waypoints = m

	default:
		return nil, fmt.Errorf("open stores: unknown database driver %q", cfg.Database.Driver)
	}

	switch cfg.Cache.Backend {
	case "none", "":
	case "sql":
		switch s.driver {
		case "postgres":
			s.Results = cache.NewSQLResultStore(s.db)
		case "sqlite":
			s.Results = cache.NewSqliteResultStore(s.db)
		default:
			_ = s.Close()
			return nil, fmt.Errorf("open stores: sql result store needs a sql database, got %q", s.driver)
		}
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		s.closers = append(s.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("open stores: ping redis %s: %w", cfg.Redis.Addr, err)
		}
		s.Results = cache.NewRedisResultStore(client, cfg.Redis.KeyPrefix)
	default:
		_ = s.Close()
		return nil, fmt.Errorf("open stores: unknown cache backend %q", cfg.Cache.Backend)
	}

	return s, nil
}

// InitSchema creates the tables of the SQL backends. It is a no-op for memory.
func (s *Stores) InitSchema(ctx context.Context) error {
	switch s.driver {
	case "postgres":
		return repositories.InitPostgresSchema(ctx, s.db)
	case "sqlite":
		return repositories.InitSQLiteSchema(ctx, s.db)
	}
	return nil
}

// Close releases every connection, in reverse order of opening.
func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
