package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"swipe/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swipe.log")
	logger, err := New(config.Log{Level: "debug", Path: path})
	require.NoError(t, err)

	logger.Debug("object added", zap.String("object", "player#1"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "object added", entry["msg"])
	assert.Equal(t, "player#1", entry["object"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swipe.log")
	logger, err := New(config.Log{Level: "warn", Path: path})
	require.NoError(t, err)

	logger.Info("hidden")
	require.NoError(t, logger.Sync())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.Log{Level: "loud", Path: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
}

func TestInstallReplacesGlobal(t *testing.T) {
	logger, restore, err := Install(config.Log{Level: "info", Path: filepath.Join(t.TempDir(), "x.log")})
	require.NoError(t, err)
	assert.Same(t, logger, zap.L())
	restore()
	assert.NotSame(t, logger, zap.L())
}
