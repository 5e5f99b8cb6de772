package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New().ToWriter(&buf).Format("json").Level("debug").Make()
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug().Str("component", "editor").Msg("committed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "editor", entry["component"])
	assert.Equal(t, "committed", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New().ToWriter(&buf).Format("json").Level("chatty").Make()
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
	logger.Info().Msg("shown")
	assert.NotZero(t, buf.Len())
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.log")
	logger, closer, err := New().ToFile(path).Format("console").Make()
	require.NoError(t, err)

	logger.Info().Msg("started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "started")
}
