package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	cfg := &AppConfig{}
	cfg.APP.LogLevel = "warn"
	assert.Equal(t, zerolog.WarnLevel, SetupLogger(cfg))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	cfg.APP.LogLevel = "laut"
	assert.Equal(t, zerolog.InfoLevel, SetupLogger(cfg))

	cfg.APP.LogLevel = ""
	cfg.APP.State = "prod"
	assert.Equal(t, zerolog.InfoLevel, SetupLogger(cfg))
}
