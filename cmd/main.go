// Package main ist der Einstiegspunkt der API von "stufen-meister".
// Es lädt die Konfiguration, öffnet Postgres und Redis, setzt die Fiber-API
// mit Middleware und Routern auf und fährt bei SIGINT/SIGTERM sauber herunter.
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/storage"
	"github.com/Xenn-00/stufen-meister/internal/config"
	"github.com/Xenn-00/stufen-meister/internal/db"
	"github.com/Xenn-00/stufen-meister/internal/i18n"
	"github.com/Xenn-00/stufen-meister/internal/middleware"
	"github.com/Xenn-00/stufen-meister/internal/queue"
	"github.com/Xenn-00/stufen-meister/internal/routers"
	"github.com/Xenn-00/stufen-meister/internal/utils"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Konfiguration laden
	cfg := config.LoadConfig()
	if cfg == nil {
		log.Fatal().Msg("Konfiguration ungültig, Abbruch.")
	}
	config.SetupLogger(cfg)

	// 2. I18N
	i18nSvc := i18n.NewInitI18nService()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Postgres- und Redis-Pool
	dbPool, err := db.ConnectPool(ctx, cfg.DATABASE.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Postgres nicht erreichbar")
	}
	redisPool, err := db.RedisPool(ctx, cfg.DATABASE.Redis.Addr, cfg.DATABASE.Redis.Password, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis nicht erreichbar")
	}

	// 4. Paseto, Dateiablage und Queue-Client
	paseto, err := utils.NewPasetoMaker(cfg.APP_SECRET.Paseto.HexKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Paseto-Maker konnte nicht erstellt werden")
	}
	maxUpload := cfg.STORAGE.MaxUploadMB << 20
	fileStorage, err := storage.NewLocalStorage(cfg.STORAGE.UploadDir, maxUpload)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.STORAGE.UploadDir).Msg("Upload-Verzeichnis nicht nutzbar")
	}
	taskQueue := queue.NewTaskQueue(redisPool)

	// 5. Fiber-App mit ErrorHandler, RequestID- und Logger-Middleware
	app := fiber.New(fiber.Config{
		AppName:      cfg.APP.Name,
		ErrorHandler: middleware.ErrorHandlerMiddleware(i18nSvc),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		// mehrere Dateien pro Anfrage plus Formularfelder
		BodyLimit: int(maxUpload) * 4,
	})
	app.Use(recover.New())
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.AcceptLanguageMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(cors.New())

	// 6. Routen
	routers.SetupRoutes(app, dbPool, redisPool, i18nSvc, paseto, routers.RouterOptions{
		TaskQueue:    taskQueue,
		FileStorage:  fileStorage,
		TokenTTL:     time.Duration(cfg.APP_SECRET.Paseto.TokenTTLMinutes) * time.Minute,
		TaskCacheTTL: time.Duration(cfg.CACHE.TaskTTLSeconds) * time.Second,
		LimiterStore: routers.CfgRedisStorage{
			Host:     cfg.DATABASE.Redis.Addr,
			Password: cfg.DATABASE.Redis.Password,
			Database: 1,
		},
	})

	go func() {
		log.Info().Msgf("Starte %s auf Port %s", cfg.APP.Name, cfg.APP.Port)
		if err := app.Listen(fmt.Sprintf(":%s", cfg.APP.Port)); err != nil {
			log.Fatal().Err(err).Msg("Der Server konnte nicht gestartet werden")
		}
	}()

	// 7. Graceful Shutdown: zuerst Fiber, dann Queue, Redis und DB
	<-ctx.Done()
	log.Warn().Msg("Shutdown-Signal empfangen... Vorbereitung zum Herunterfahren.")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Beim Herunterfahren ist ein Fehler aufgetreten")
	}
	if err := taskQueue.Close(); err != nil {
		log.Error().Err(err).Msg("Queue-Client konnte nicht geschlossen werden")
	}
	if err := redisPool.Close(); err != nil {
		log.Error().Err(err).Msg("Redis-Pool konnte nicht geschlossen werden")
	}
	dbPool.Close()

	log.Info().Msg("Server ordnungsgemäß heruntergefahren.")
}
