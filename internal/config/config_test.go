package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/spacegom-engine/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "./migrations", cfg.Database.MigrationsDir)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Redis.LockTTL)
	assert.Equal(t, time.Hour, cfg.Cleanup.Interval)
	assert.Zero(t, cfg.Cleanup.Retention)
	assert.Equal(t, models.DifficultyNormal, cfg.Game.DefaultDifficulty)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_LOCK_TTL", "3s")
	t.Setenv("GAME_RETENTION", "720h")
	t.Setenv("DEFAULT_DIFFICULTY", "Hard")
	t.Setenv("DICE_SEED", "42")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3*time.Second, cfg.Redis.LockTTL)
	assert.Equal(t, 720*time.Hour, cfg.Cleanup.Retention)
	assert.Equal(t, models.DifficultyHard, cfg.Game.DefaultDifficulty)
	assert.Equal(t, int64(42), cfg.Game.DiceSeed)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("CLEANUP_INTERVAL", "soon")
	t.Setenv("LOG_LEVEL", "loud")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Cleanup.Interval)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	cases := map[string]map[string]string{
		"port":       {"SERVER_PORT": "70000"},
		"driver":     {"STORAGE_DRIVER": "sqlite"},
		"dsn":        {"DATABASE_DSN": ""},
		"redis":      {"REDIS_ENABLED": "true", "REDIS_ADDRESS": ""},
		"lock ttl":   {"REDIS_LOCK_TTL": "0s"},
		"retention":  {"GAME_RETENTION": "-1h"},
		"difficulty": {"DEFAULT_DIFFICULTY": "nightmare"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
