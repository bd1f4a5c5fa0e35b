package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Env string

	Port string

	StoreBackend string // memory | mysql
	MySQLDSN     string // required when STORE_BACKEND=mysql

	// Optional: run migrations at startup (dev convenience)
	RunMigrations bool
	MigrationsDir string

	// Memory backend: JSON product snapshot to seed the catalog from.
	CatalogSnapshot string

	// Feed files live under UploadsDir and are served under UploadsURL.
	UploadsDir string
	UploadsURL string

	// Store-level facts the feed needs (site identity, currency, weight unit).
	SiteName   string
	SiteURL    string
	Currency   string
	WeightUnit string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Env:             getenv("ENV", "dev"),
		Port:            getenv("PORT", "8080"),
		StoreBackend:    getenv("STORE_BACKEND", "memory"),
		MySQLDSN:        getenv("DB_DSN", ""),
		RunMigrations:   getenv("RUN_MIGRATIONS", "false") == "true",
		MigrationsDir:   getenv("MIGRATIONS_DIR", "./migrations"),
		CatalogSnapshot: getenv("CATALOG_SNAPSHOT", ""),
		UploadsDir:      getenv("UPLOADS_DIR", "./uploads"),
		UploadsURL:      getenv("UPLOADS_URL", "http://localhost:8080/uploads"),
		SiteName:        getenv("SITE_NAME", "My Store"),
		SiteURL:         getenv("SITE_URL", "http://localhost:8080"),
		Currency:        getenv("CURRENCY", "USD"),
		WeightUnit:      getenv("WEIGHT_UNIT", "kg"),
	}
	return cfg
}

func getenv(key string, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
