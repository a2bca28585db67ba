package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/price-alert-notifier/internal/config"
	"github.com/donaldgifford/price-alert-notifier/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the notifier tables in a local PostgreSQL database",
	Long: "Applies the embedded migrations that create the favorites, profiles, and listings\n" +
		"tables. Only valid with the postgres database driver; the managed data store\n" +
		"behind the REST gateway owns its own schema.",
	RunE: runMigrate,
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrate requires database.driver %q (got %q)",
			config.DriverPostgres, cfg.Database.Driver)
	}

	log, logCloser := newLogger(cfg.Logging)
	defer logCloser.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pg, err := store.NewPostgresStore(ctx, cfg.Database.URL,
		store.WithPoolSize(cfg.Database.PoolSize),
		store.WithPassword(cfg.Database.ServiceKey),
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pg.Close()

	log.Info("running migrations")

	if err := pg.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	log.Info("migrations complete")
	return nil
}
