package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger: im Zustand "prod" JSON auf stderr, sonst ConsoleWriter. Unbekannte Level fallen auf info zurück.
func SetupLogger(cfg *AppConfig) zerolog.Level {
	level, err := zerolog.ParseLevel(cfg.APP.LogLevel)
	if err != nil || cfg.APP.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.APP.State == "prod" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("app", cfg.APP.Name).Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return level
}
