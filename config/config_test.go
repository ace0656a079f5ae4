package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Scheduling.LockTTL)
	assert.Equal(t, 5*time.Second, cfg.Scheduling.LockWait)
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nDB_DRIVER=sqlite\nDB_SQLITE_PATH=/tmp/h.db\nSCHEDULING_LOCK_TTL=1m\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "/tmp/h.db", cfg.DB.SQLitePath)
	assert.Equal(t, time.Minute, cfg.Scheduling.LockTTL)
}

func TestLoadConfig_EnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=9090\n"), 0o600))
	t.Setenv("APP_PORT", "7070")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.App.Port)
	assert.True(t, cfg.Redis.Enabled)
}

func TestConfig_IsProduction(t *testing.T) {
	c := &Config{App: AppConfig{Env: "production"}}
	assert.True(t, c.IsProduction())

	c.App.Env = "development"
	assert.False(t, c.IsProduction())
}
