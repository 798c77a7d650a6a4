package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Xenn-00/stufen-meister/internal/config"
	"github.com/Xenn-00/stufen-meister/internal/db"
	"github.com/Xenn-00/stufen-meister/internal/mail"
	"github.com/Xenn-00/stufen-meister/internal/worker"
	worker_handler "github.com/Xenn-00/stufen-meister/internal/worker/handlers"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.LoadConfig()
	if cfg == nil {
		log.Fatal().Msg("Konfiguration ungültig, Abbruch.")
	}
	config.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.ConnectPool(ctx, cfg.DATABASE.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Postgres nicht erreichbar")
	}
	defer dbPool.Close()

	redisPool, err := db.RedisPool(ctx, cfg.DATABASE.Redis.Addr, cfg.DATABASE.Redis.Password, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis nicht erreichbar")
	}
	defer redisPool.Close()

	mailer := mail.NewMailer(cfg)
	handler := worker_handler.NewWorkerHandler(dbPool, mailer)

	// RunWorker blockiert bis zum Signal und fährt Server und Scheduler selbst herunter.
	log.Info().Msg("Starting worker server...")
	if err := worker.RunWorker(ctx, redisPool, handler); err != nil {
		log.Error().Err(err).Msg("worker crashed")
		return
	}
	log.Info().Msg("worker shutdown complete")
}
