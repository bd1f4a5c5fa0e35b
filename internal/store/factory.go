package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/wooplugin/gswc/internal/catalog"
	"github.com/wooplugin/gswc/internal/db"
	"github.com/wooplugin/gswc/internal/fields"
	"github.com/wooplugin/gswc/internal/settings"
)

type FactoryConfig struct {
	Backend  string
	MySQLDSN string

	// Memory backend only: JSON product snapshot to seed the catalog.
	CatalogSnapshot string
}

type FactoryResult struct {
	Catalog  catalog.Catalog
	Settings settings.Store
	Meta     fields.MetaStore

	DB *sql.DB // only set for mysql

	// Memory backend only: snapshot keys the loader did not recognize.
	SnapshotWarnings []string
}

func New(ctx context.Context, cfg FactoryConfig) (FactoryResult, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = "memory"
	}

	switch backend {
	case "memory":
		res := FactoryResult{
			Settings: settings.NewMemoryStore(),
			Meta:     fields.NewMemoryMetaStore(),
		}

		if cfg.CatalogSnapshot == "" {
			res.Catalog = catalog.NewMemoryCatalog()
			return res, nil
		}

		snap, err := catalog.LoadSnapshot(cfg.CatalogSnapshot)
		if err != nil {
			return FactoryResult{}, err
		}
		res.Catalog = catalog.NewMemoryCatalog(snap.Products...)
		res.SnapshotWarnings = snap.UnknownKeys
		return res, nil

	case "mysql":
		if strings.TrimSpace(cfg.MySQLDSN) == "" {
			return FactoryResult{}, errors.New("DB_DSN is required when STORE_BACKEND=mysql")
		}

		sqlDB, err := db.Open(db.Config{DSN: cfg.MySQLDSN})
		if err != nil {
			return FactoryResult{}, err
		}

		if err := db.Ping(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return FactoryResult{}, err
		}

		return FactoryResult{
			Catalog:  catalog.NewMySQLCatalog(sqlDB),
			Settings: settings.NewMySQLStore(sqlDB),
			Meta:     fields.NewMySQLMetaStore(sqlDB),
			DB:       sqlDB,
		}, nil

	default:
		return FactoryResult{}, errors.New("unknown STORE_BACKEND (use memory or mysql)")
	}
}
