// SPDX-License-Identifier: MIT

// Package config resolves CLI settings: defaults, then an optional YAML
// file, then STEPWISE_* environment variables. Command-line flags are
// applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/stepwise/internal/logging"
	"github.com/katalvlaran/stepwise/playback"
	"github.com/katalvlaran/stepwise/render"
)

// ErrInvalid is returned when a resolved value is out of range.
var ErrInvalid = errors.New("config: invalid value")

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds every tunable the CLI reads.
type Config struct {
	Delay            time.Duration `yaml:"delay" env:"STEPWISE_DELAY"`
	PanZoomThreshold int           `yaml:"pan_zoom_threshold" env:"STEPWISE_PAN_ZOOM_THRESHOLD"`
	Seed             int64         `yaml:"seed" env:"STEPWISE_SEED"`
	LogLevel         string        `yaml:"log_level" env:"STEPWISE_LOG_LEVEL"`
	LogFormat        string        `yaml:"log_format" env:"STEPWISE_LOG_FORMAT"`
	Color            string        `yaml:"color" env:"STEPWISE_COLOR"`
}

// Default returns the built-in settings. Seed 0 means "seed from the clock".
func Default() Config {
	return Config{
		Delay:            playback.DefaultDelay,
		PanZoomThreshold: render.PanZoomThreshold,
		LogLevel:         "info",
		LogFormat:        logging.FormatText,
		Color:            ColorAuto,
	}
}

// Load resolves the configuration. An empty path skips the file layer; a
// named file that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	if c.Delay < playback.MinDelay {
		return fmt.Errorf("%w: delay %s below %s", ErrInvalid, c.Delay, playback.MinDelay)
	}
	if c.PanZoomThreshold <= 0 {
		return fmt.Errorf("%w: pan_zoom_threshold %d", ErrInvalid, c.PanZoomThreshold)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalid, c.LogFormat)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color %q", ErrInvalid, c.Color)
	}

	return nil
}
