package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.Equal(t, "ru-RU", cfg.Voice.Language)
	assert.Equal(t, 0.95, cfg.Voice.Rate)
	assert.NotEmpty(t, cfg.Endpoints.Projects)
	assert.Empty(t, cfg.AdminToken)
	assert.NoError(t, cfg.Validate())
}

func TestSaveAndLoadKeepsAdminTokenOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Endpoints.Projects = "http://localhost:9000/projects"
	cfg.AdminToken = "secret"
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/projects", loaded.Endpoints.Projects)
	assert.Equal(t, cfg.Endpoints.Assistant, loaded.Endpoints.Assistant)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("REMONT_ENDPOINTS_ASSISTANT", "http://127.0.0.1:8081/agent")
	t.Setenv("REMONT_REQUEST_TIMEOUT", "5")
	t.Setenv("REMONT_VOICE_RATE", "1.1")
	t.Setenv("REMONT_ADMIN_TOKEN", "from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8081/agent", cfg.Endpoints.Assistant)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 1.1, cfg.Voice.Rate)
	assert.Equal(t, "from-env", cfg.AdminToken)
}

func TestEnvironmentOverrideRejectsBadNumber(t *testing.T) {
	t.Setenv("REMONT_RATE_BURST", "lots")
	_, err := Load(filepath.Join(t.TempDir(), "config.json"))
	assert.Error(t, err)
}

func TestGetSet(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Set("voice.timeout", "90"))
	assert.Equal(t, 90*time.Second, cfg.VoiceTimeout())

	v, err := cfg.Get("voice.timeout")
	require.NoError(t, err)
	assert.Equal(t, "90", v)

	assert.Error(t, cfg.Set("voice.timeout", "soon"))
	assert.Error(t, cfg.Set("server-url", "x"))
	_, err = cfg.Get("server-url")
	assert.Error(t, err)

	assert.Contains(t, Keys(), "endpoints.notifications")
	assert.Equal(t, "REMONT_ENDPOINTS_NOTIFICATIONS", EnvName("endpoints.notifications"))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Endpoints.Photos = "not a url"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.RequestTimeoutSeconds = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogFormat = "xml"
	assert.Error(t, cfg.Validate())
}

func TestGetConfigDirHonoursHome(t *testing.T) {
	t.Setenv("REMONT_HOME", "/tmp/remont-test")
	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/remont-test", dir)

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/remont-test/config.json", path)
}
