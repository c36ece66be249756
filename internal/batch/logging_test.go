package batch

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")

	logger.Debug("hidden %d", 1)
	logger.Info("hidden too")
	logger.Warn("kept %s", "warning")
	logger.Error("kept error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] kept warning")
	assert.Contains(t, out, "[ERROR] kept error")
}

func TestLoggerUnknownLevelMeansInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "chatty")

	logger.Debug("hidden")
	logger.Info("kept")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[INFO] kept")
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")

	logger, closer, err := NewFileLogger(path, "info")
	require.NoError(t, err)
	logger.Info("first")
	require.NoError(t, closer.Close())

	logger, closer, err = NewFileLogger(path, "info")
	require.NoError(t, err)
	logger.Info("second")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}
