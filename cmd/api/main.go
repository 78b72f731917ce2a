package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/subosito/gotenv"

	"github.com/Spok95/trade-network/internal/api"
	"github.com/Spok95/trade-network/internal/config"
	"github.com/Spok95/trade-network/internal/domain/contacts"
	"github.com/Spok95/trade-network/internal/domain/products"
	"github.com/Spok95/trade-network/internal/domain/units"
	"github.com/Spok95/trade-network/internal/infra/db"
	httpx "github.com/Spok95/trade-network/internal/infra/http"
	"github.com/Spok95/trade-network/internal/infra/logger"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func runMigrations(dsn string, log *slog.Logger) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN, log); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	unitsSvc := units.NewService(units.NewRepo(pool), log)
	uh := api.NewUnitsHandler(log, unitsSvc)
	ch := api.NewContactsHandler(log, contacts.NewRepo(pool))
	ph := api.NewProductsHandler(log, products.NewRepo(pool))
	router := api.NewRouter(log, uh, ch, ph)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, router)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
