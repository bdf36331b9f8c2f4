package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zamm-dev/diary-mvp/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesToFileAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "diary.log")

	logger, closer, err := New(config.LoggingConfig{Level: "warn", File: path})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("save failed", zap.String(FieldPath, "/tmp/x.csv"))
	require.NoError(t, logger.Sync())
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "save failed")
	assert.Contains(t, out, `"path": "/tmp/x.csv"`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Level: "chatty"})
	assert.Error(t, err)
}

func TestNew_DefaultsToInfoOnStderr(t *testing.T) {
	logger, closer, err := New(config.LoggingConfig{})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.NoError(t, closer.Close())
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(zapcore.AddSync(&buf), zapcore.DebugLevel)

	logger.Debug("loaded diary", zap.Int(FieldCount, 3), zap.Int(FieldSkipped, 1))

	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "loaded diary")
	assert.Contains(t, buf.String(), `"skipped": 1`)
}
