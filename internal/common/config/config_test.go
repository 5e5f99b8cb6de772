package config

import (
	"testing"

	"floorplanner/internal/editor/models"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30, cfg.SessionIdle)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Equal(t, models.DefaultSettings(), cfg.Settings())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GRID_SIZE", "10")
	t.Setenv("SNAP_TO_GRID", "false")
	t.Setenv("KEEP_DEGENERATE", "true")
	t.Setenv("HISTORY_LIMIT", "not-a-number")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("SESSION_IDLE_MINUTES", "5")
	t.Setenv("CORS_ORIGINS", "http://a.local, ,http://b.local")

	cfg := Load()
	s := cfg.Settings()
	assert.Equal(t, 10.0, s.GridSize)
	assert.False(t, s.SnapToGrid)
	assert.True(t, s.KeepDegenerate)
	assert.Equal(t, models.DefaultHistoryLimit, s.HistoryLimit)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 5, cfg.SessionIdle)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORSOrigins)
}
