package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/flavono123/shaper/internal/projection"
)

const (
	EnvDebug         = "DEBUG"
	EnvLogLevel      = "SHAPER_LOG_LEVEL"
	EnvExportDir     = "SHAPER_EXPORT_DIR"
	EnvPreviewFormat = "SHAPER_PREVIEW_FORMAT"

	DebugLogFile = "debug.log"
)

type Config struct {
	Debug         bool
	LogLevel      logrus.Level
	ExportDir     string
	PreviewFormat projection.Format
}

// Load reads the configuration from the environment. envFile is applied
// first when it exists; variables already set take precedence.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to load env file %s", envFile)
		}
	}

	cfg := &Config{
		Debug:         len(os.Getenv(EnvDebug)) > 0,
		LogLevel:      logrus.InfoLevel,
		PreviewFormat: projection.FormatJSON,
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", EnvLogLevel)
		}
		cfg.LogLevel = level
	} else if cfg.Debug {
		cfg.LogLevel = logrus.DebugLevel
	}

	if f := os.Getenv(EnvPreviewFormat); f != "" {
		format, err := projection.ParseFormat(f)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", EnvPreviewFormat)
		}
		cfg.PreviewFormat = format
	}

	cfg.ExportDir = os.Getenv(EnvExportDir)
	if cfg.ExportDir == "" {
		dir, err := DefaultExportDir()
		if err != nil {
			return nil, err
		}
		cfg.ExportDir = dir
	}

	return cfg, nil
}

func DefaultExportDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to find user config dir")
	}
	return filepath.Join(configDir, AppID, "exports"), nil
}
