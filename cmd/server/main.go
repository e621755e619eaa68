package main

import (
	"context"
	"errors"
	"gps-route-service/internal/api"
	"gps-route-service/internal/app"
	"gps-route-service/internal/config"
	"gps-route-service/internal/platform/clock"
	"gps-route-service/internal/platform/obs"
	"gps-route-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// main is the application composition root.
// It wires concrete adapters behind ports and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		obs.L().Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	obs.Init(obs.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk, err := clock.NewSystem(cfg.Clock.Timezone)
	if err != nil {
		return err
	}

	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = stores.Close() }()

	// SQLite and memory runs are local; create the schema on startup.
	// Postgres is migrated with dbtool.
	if cfg.Database.Driver != "postgres" {
		if err := stores.InitSchema(ctx); err != nil {
			return err
		}
	}

	aggregator := services.NewDailyAggregator(stores.Waypoints, clk.Location())
	resultCache := services.NewResultCache(aggregator, stores.Results)

	router := api.NewRouter(api.Deps{
		Registry:   services.NewRouteRegistry(stores.Routes, clk),
		Ledger:     services.NewWaypointLedger(stores.Routes, stores.Waypoints, clk),
		Calculator: services.NewDistanceCalculator(stores.Waypoints, stores.Routes),
		Query:      services.NewLongestRouteQuery(resultCache, clk),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		obs.L().Info().
			Str("addr", srv.Addr).
			Str("driver", cfg.Database.Driver).
			Str("cache", cfg.Cache.Backend).
			Str("timezone", cfg.Clock.Timezone).
			Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	obs.L().Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
