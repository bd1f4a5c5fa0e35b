package main

import (
	"context"
	"errors"
	"os"

	"github.com/wooplugin/gswc/internal/config"
	"github.com/wooplugin/gswc/internal/feed"
	"github.com/wooplugin/gswc/internal/feed/google"
	"github.com/wooplugin/gswc/internal/fields"
	"github.com/wooplugin/gswc/internal/logging"
	"github.com/wooplugin/gswc/internal/migrate"
	"github.com/wooplugin/gswc/internal/store"
)

// One-shot feed build: same wiring as the API server, minus the server.
// Meant for cron and for smoke-testing a catalog snapshot.
func main() {
	cfg := config.Load()
	logger := logging.NewStdLogger("feed-generate ")

	ctx := context.Background()

	stores, err := store.New(ctx, store.FactoryConfig{
		Backend:         cfg.StoreBackend,
		MySQLDSN:        cfg.MySQLDSN,
		CatalogSnapshot: cfg.CatalogSnapshot,
	})
	if err != nil {
		logger.Printf("store init failed: %v", err)
		os.Exit(1)
	}
	if stores.DB != nil {
		defer stores.DB.Close()

		if cfg.RunMigrations {
			if err := migrate.ApplyDir(ctx, stores.DB, cfg.MigrationsDir); err != nil {
				logger.Printf("migrations failed: %v", err)
				os.Exit(1)
			}
		}
	}
	if len(stores.SnapshotWarnings) > 0 {
		logger.Printf("catalog snapshot: unknown keys %v", stores.SnapshotWarnings)
	}

	generator := &feed.Generator{
		Settings: stores.Settings,
		Catalog:  stores.Catalog,
		Channel: google.Channel{
			Catalog: stores.Catalog,
			Fields: fields.Resolver{
				Meta:    stores.Meta,
				Catalog: stores.Catalog,
			},
		},
		Site: feed.Site{
			Name:       cfg.SiteName,
			URL:        cfg.SiteURL,
			Currency:   cfg.Currency,
			WeightUnit: cfg.WeightUnit,
		},
		UploadsDir: cfg.UploadsDir,
		UploadsURL: cfg.UploadsURL,
	}

	res, err := generator.Generate(ctx)
	if err != nil {
		if errors.Is(err, feed.ErrFeedDisabled) {
			logger.Printf("feed is disabled, nothing to do")
			os.Exit(2)
		}
		logger.Printf("generate failed: %v", err)
		os.Exit(1)
	}

	logger.Printf("wrote %s (%d products)", res.Path, res.Count)
}
