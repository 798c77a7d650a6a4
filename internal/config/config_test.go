package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
APP:
  NAME: stufen-test
  PORT: "9090"
DATABASE:
  Postgres:
    DSN: postgres://file/db
  Redis:
    ADDR: redis:6379
STORAGE:
  UPLOAD_DIR: /tmp/uploads
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "application.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	dir := writeConfig(t, testYAML)

	cfg := loadConfig(viper.New(), dir)
	require.NotNil(t, cfg)

	assert.Equal(t, "stufen-test", cfg.APP.Name)
	assert.Equal(t, "9090", cfg.APP.Port)
	assert.Equal(t, "postgres://file/db", cfg.DATABASE.Postgres.DSN)
	assert.Equal(t, "redis:6379", cfg.DATABASE.Redis.Addr)
	assert.Equal(t, "/tmp/uploads", cfg.STORAGE.UploadDir)
	assert.Equal(t, int64(16), cfg.STORAGE.MaxUploadMB)
	assert.Equal(t, 300, cfg.CACHE.TaskTTLSeconds)
	assert.Equal(t, 60, cfg.APP_SECRET.Paseto.TokenTTLMinutes)
	assert.Len(t, cfg.APP_SECRET.Paseto.HexKey, 64)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	dir := writeConfig(t, testYAML)
	t.Setenv("DATABASE_POSTGRES_DSN", "postgres://env/db")
	t.Setenv("CACHE_TASK_TTL_SECONDS", "42")

	cfg := loadConfig(viper.New(), dir)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres://env/db", cfg.DATABASE.Postgres.DSN)
	assert.Equal(t, 42, cfg.CACHE.TaskTTLSeconds)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := writeConfig(t, testYAML)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_STATE=prod\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("APP_STATE") })

	cfg := loadConfig(viper.New(), dir)
	require.NotNil(t, cfg)
	assert.Equal(t, "prod", cfg.APP.State)
}

func TestLoadConfig_MissingDSN(t *testing.T) {
	dir := writeConfig(t, "APP:\n  NAME: x\n")

	assert.Nil(t, loadConfig(viper.New(), dir))
}
