package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BUTACA_STATE_DIR", t.TempDir())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, ArchiveOff, cfg.ArchiveMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BUTACA_API_URL", "https://cine.example.com")
	t.Setenv("BUTACA_STATE_DIR", "/tmp/butaca-test")
	t.Setenv("BUTACA_ARCHIVE", "file")
	t.Setenv("BUTACA_LOG_LEVEL", "debug")
	t.Setenv("BUTACA_HTTP_TIMEOUT", "30s")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://cine.example.com", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/butaca-test", cfg.StateDir)
	assert.Equal(t, ArchiveFile, cfg.ArchiveMode)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "/tmp/butaca-test/purchases.log", cfg.ArchivePath())
}

func TestLoadRejectsBadArchiveMode(t *testing.T) {
	t.Setenv("BUTACA_STATE_DIR", t.TempDir())
	t.Setenv("BUTACA_ARCHIVE", "s3")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("BUTACA_STATE_DIR", t.TempDir())
	t.Setenv("BUTACA_HTTP_TIMEOUT", "soon")

	_, err := Load()

	assert.Error(t, err)
}
