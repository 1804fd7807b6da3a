package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Writer: &buf, Level: "info", Format: "json"})

	logger.Debug("hidden")
	logger.Info("request finished", "function", "projects", "status", 200)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request finished", entry["msg"])
	assert.Equal(t, "projects", entry["function"])
}

func TestNewColorWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Writer: &buf, Level: "debug"}).Debug("transcribing", "bytes", 42)
	assert.Contains(t, buf.String(), "transcribing")
	assert.Contains(t, buf.String(), "42")
}
