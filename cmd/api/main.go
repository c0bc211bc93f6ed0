package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jbinformatica/pedidos-api/internal/api"
	"github.com/jbinformatica/pedidos-api/internal/core/service"
	"github.com/jbinformatica/pedidos-api/internal/core/token"
	"github.com/jbinformatica/pedidos-api/internal/infrastructure/config"
	"github.com/jbinformatica/pedidos-api/internal/infrastructure/db/postgres"
	redisdb "github.com/jbinformatica/pedidos-api/internal/infrastructure/db/redis"
	"github.com/jbinformatica/pedidos-api/internal/infrastructure/notify"
	"github.com/jbinformatica/pedidos-api/internal/infrastructure/queue"
	"github.com/jbinformatica/pedidos-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(ctx, cfg.Postgres.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if cfg.Seed {
		if err := postgres.Seed(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
		log.Info().Msg("database seeded")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	codec, err := token.NewCodec(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token codec init failed")
	}

	// Notification pipeline: sharded dispatcher feeding the WhatsApp sender,
	// with Redis-backed dedup.
	dedup := redisdb.NewNotificationDedup(rdb)
	notifyService := notify.NewService(notify.NewLogSender(log), dedup, log)
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, notifyService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		DB:    db,
		Redis: rdb,
		Codec: codec,
		Master: service.MasterCredentials{
			Identity: cfg.Master.Identity,
			Password: cfg.Master.Password,
		},
		Notifier: dispatcher,
		Log:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
