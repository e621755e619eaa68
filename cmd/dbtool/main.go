package main

import (
	"context"
	"fmt"
	"gps-route-service/internal/adapters/repositories"
	"gps-route-service/internal/app"
	"gps-route-service/internal/config"
	"gps-route-service/internal/platform/obs"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	stores *app.Stores
)

var rootCmd = &cobra.Command{
	Use:           "dbtool",
	Short:         "Schema and bootstrap data management for the route store",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		obs.Init(obs.Config{Level: cfg.Logging.Level, Format: "console"})

		stores, err = app.OpenStores(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if stores != nil {
			return stores.Close()
		}
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create tables and indexes (idempotent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		obs.L().Info().Str("driver", cfg.Database.Driver).Msg("initializing database schema")
		if err := stores.InitSchema(cmd.Context()); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}
		obs.L().Info().Msg("schema ready")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the bootstrap route when the store is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		wrote, err := repositories.SeedBootstrap(cmd.Context(), stores.Routes, stores.Waypoints)
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		if !wrote {
			obs.L().Info().Msg("routes already present, nothing seeded")
			return nil
		}
		obs.L().Info().Msg("seeding complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd, seedCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "dbtool:", err)
		os.Exit(1)
	}
}
