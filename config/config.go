package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	"github.com/jfuentesr/butaca/constant"
)

const (
	ArchiveOff      = "off"
	ArchiveFile     = "file"
	ArchivePostgres = "postgres"
)

type Config struct {
	APIBaseURL  string
	StateDir    string
	ArchiveMode string
	LogLevel    string
	HTTPTimeout time.Duration
}

// Load reads configuration from the environment, loading .env first if
// one is present. Everything has a sensible default; only a malformed
// value errors.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL:  constant.DEFAULT_API_URL,
		ArchiveMode: ArchiveOff,
		LogLevel:    "info",
		HTTPTimeout: 15 * time.Second,
	}

	if v := os.Getenv("BUTACA_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("BUTACA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	switch v := os.Getenv("BUTACA_ARCHIVE"); v {
	case "", ArchiveOff:
	case ArchiveFile, ArchivePostgres:
		cfg.ArchiveMode = v
	default:
		return Config{}, errors.Newf("BUTACA_ARCHIVE must be off, file or postgres, got %q", v)
	}

	if v := os.Getenv("BUTACA_HTTP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.Wrap(err, "parsing BUTACA_HTTP_TIMEOUT")
		}
		cfg.HTTPTimeout = timeout
	}

	if v := os.Getenv("BUTACA_STATE_DIR"); v != "" {
		cfg.StateDir = v
	} else {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, errors.Wrap(err, "resolving user config dir")
		}
		cfg.StateDir = filepath.Join(base, "butaca")
	}

	return cfg, nil
}

// ArchivePath is where the file archive writes when ArchiveMode is
// file.
func (c Config) ArchivePath() string {
	return filepath.Join(c.StateDir, "purchases.log")
}
