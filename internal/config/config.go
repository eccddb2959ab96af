// Package config provides viewer defaults loaded from a YAML file, with
// sensible fallbacks when no file exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "viewer.yaml"

// Config represents the viewer configuration loaded from YAML.
type Config struct {
	// Display parameters
	Display struct {
		// Brightness is the startup brightness in [-100, 100]
		Brightness float64 `yaml:"brightness"`

		// Contrast is the startup contrast in [-100, 100]
		Contrast float64 `yaml:"contrast"`

		// AutoWindowLow/High are the intensity quantiles used by the
		// auto-window action
		AutoWindowLow  float64 `yaml:"autoWindowLow"`
		AutoWindowHigh float64 `yaml:"autoWindowHigh"`
	} `yaml:"display"`

	// Canvas parameters
	Canvas struct {
		// ZoomStep is the multiplicative zoom factor per wheel notch
		ZoomStep float64 `yaml:"zoomStep"`

		// MinZoom and MaxZoom bound the zoom range
		MinZoom float64 `yaml:"minZoom"`
		MaxZoom float64 `yaml:"maxZoom"`

		// ShowHover toggles the temporary hover crosshair
		ShowHover bool `yaml:"showHover"`
	} `yaml:"canvas"`
}

// Default returns a configuration with default values.
func Default() *Config {
	cfg := &Config{}

	cfg.Display.Brightness = 0
	cfg.Display.Contrast = 0
	cfg.Display.AutoWindowLow = 0.02
	cfg.Display.AutoWindowHigh = 0.98

	cfg.Canvas.ZoomStep = 1.25
	cfg.Canvas.MinZoom = 0.1
	cfg.Canvas.MaxZoom = 10.0
	cfg.Canvas.ShowHover = true

	return cfg
}

// Load reads a configuration file, overlaying it on the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault looks for viewer.yaml in the user config directory and
// falls back to defaults when it is absent or unreadable.
func LoadOrDefault() *Config {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	path := filepath.Join(configDir, "mpr-viewer", configFile)

	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}
