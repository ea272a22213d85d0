package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/sj23z/Puzur-Cataloge/api/routes"
	authsvc "github.com/sj23z/Puzur-Cataloge/internal/auth"
	"github.com/sj23z/Puzur-Cataloge/internal/catalog"
	"github.com/sj23z/Puzur-Cataloge/internal/identity"
	"github.com/sj23z/Puzur-Cataloge/internal/orders"
	"github.com/sj23z/Puzur-Cataloge/internal/seed"
	"github.com/sj23z/Puzur-Cataloge/pkg/auth/session"
	"github.com/sj23z/Puzur-Cataloge/pkg/config"
	"github.com/sj23z/Puzur-Cataloge/pkg/db"
	"github.com/sj23z/Puzur-Cataloge/pkg/kv"
	"github.com/sj23z/Puzur-Cataloge/pkg/logger"
	"github.com/sj23z/Puzur-Cataloge/pkg/metrics"
	"github.com/sj23z/Puzur-Cataloge/pkg/migrate"
	"github.com/sj23z/Puzur-Cataloge/pkg/redis"
)

const shutdownGrace = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	store, err := kv.NewGormStore(dbClient.DB(), cfg.Store.Namespace)
	if err != nil {
		logg.Error(context.Background(), "failed to build kv store", err)
		os.Exit(1)
	}

	if cfg.Store.Seed {
		if err := seed.Run(context.Background(), store, cfg.Password, logg); err != nil {
			logg.Error(context.Background(), "failed to seed store", err)
			os.Exit(1)
		}
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(store)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	identityService, err := identity.NewService(store, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}
	orderService, err := orders.NewService(store, catalogService, identityService)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}
	authService, err := authsvc.NewService(identityService, sessionManager, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			DBPinger:   dbClient,
			RedisP:     redisClient,
			Sessions:   sessionManager,
			Auth:       authService,
			Catalog:    catalogService,
			Identities: identityService,
			Orders:     orderService,
			Metrics:    httpMetrics,
			Gatherer:   registry,
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	graceCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	shutdownErrs := server.Shutdown(graceCtx)
	shutdownErrs = multierr.Append(shutdownErrs, redisClient.Close())
	shutdownErrs = multierr.Append(shutdownErrs, dbClient.Close())
	if shutdownErrs != nil {
		logg.Error(ctx, "shutdown completed with errors", shutdownErrs)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}
