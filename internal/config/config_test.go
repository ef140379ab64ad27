package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.EqualValues(t, 8194, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "./templates", cfg.UI.TemplatesPath)
	assert.Equal(t, 24*time.Hour, cfg.Session.Lifetime)
	assert.True(t, cfg.Cleanup.Enabled)
	assert.Equal(t, "0 * * * *", cfg.Cleanup.Schedule)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
}

func TestNewConfig_EnvironmentOverride(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("CLEANUP_ENABLED", "false")

	cfg := NewConfig()

	assert.EqualValues(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.False(t, cfg.Cleanup.Enabled)
}
