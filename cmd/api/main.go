package main

import (
	"context"
	"crypto/rsa"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/wooplugin/gswc/internal/api/auth"
	"github.com/wooplugin/gswc/internal/api/handlers"
	"github.com/wooplugin/gswc/internal/api/middleware"
	"github.com/wooplugin/gswc/internal/config"
	"github.com/wooplugin/gswc/internal/feed"
	"github.com/wooplugin/gswc/internal/feed/google"
	"github.com/wooplugin/gswc/internal/fields"
	"github.com/wooplugin/gswc/internal/logging"
	"github.com/wooplugin/gswc/internal/migrate"
	"github.com/wooplugin/gswc/internal/store"
)

func main() {
	cfg := config.Load()
	logger := logging.NewStdLogger("feed-service ")

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

	resolver := fields.Resolver{
		Meta:    stores.Meta,
		Catalog: stores.Catalog,
	}

	channel := google.Channel{
		Catalog: stores.Catalog,
		Fields:  resolver,
	}

	generator := &feed.Generator{
		Settings: stores.Settings,
		Catalog:  stores.Catalog,
		Channel:  channel,
		Site: feed.Site{
			Name:       cfg.SiteName,
			URL:        cfg.SiteURL,
			Currency:   cfg.Currency,
			WeightUnit: cfg.WeightUnit,
		},
		UploadsDir: cfg.UploadsDir,
		UploadsURL: cfg.UploadsURL,
	}

	var publicKey *rsa.PublicKey
	if !strings.EqualFold(cfg.Env, "dev") {
		publicKey, err = auth.LoadRSAPublicKeyFromEnv("JWT_PUBLIC_KEY_PEM")
		if err != nil {
			logger.Printf("auth init failed: %v", err)
			os.Exit(1)
		}
	}

	protect := func(next http.Handler) http.Handler {
		return middleware.AuthMiddleware{
			Env:       cfg.Env,
			PublicKey: publicKey,
			Next:      next,
		}
	}

	idemStore := middleware.NewMemoryIdempotencyStore(24 * time.Hour)

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.Handle("/v1/feed/generate", protect(middleware.IdempotencyMiddleware{
		Store: idemStore,
		Next:  handlers.FeedGenerateHandler{Generator: generator},
	}))
	mux.Handle("/v1/feed/toggle", protect(handlers.FeedToggleHandler{Generator: generator}))
	mux.Handle("/v1/feed/status", protect(handlers.FeedStatusHandler{Generator: generator}))

	mux.Handle("/v1/products/", protect(handlers.ProductFieldsHandler{
		Resolver: resolver,
		Meta:     stores.Meta,
	}))

	mux.Handle("/v1/settings", protect(handlers.SettingsHandler{Store: stores.Settings}))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("starting (env=%s backend=%s) on %s", cfg.Env, cfg.StoreBackend, server.Addr)

		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Printf("server error: %v", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(logger, server)
}

func waitForShutdown(logger interface{ Printf(string, ...any) }, server *http.Server) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Printf("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = server.Shutdown(ctx)
	logger.Printf("shutdown complete")
}
