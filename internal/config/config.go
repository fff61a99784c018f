// Package config handles engine configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrConfiguration is returned when a required option is missing or invalid.
var ErrConfiguration = errors.New("configuration error")

// Default option values.
const (
	DefaultRootPath     = "."
	DefaultWindowTitle  = "UbiEngine"
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
	DefaultFPSLimit     = 60
)

// Config holds all engine settings.
type Config struct {
	RootPath     string `yaml:"root_path"`
	WindowTitle  string `yaml:"window_title"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	Fullscreen   bool   `yaml:"fullscreen"`
	VSync        bool   `yaml:"vsync"`
	FPSLimit     int    `yaml:"fps_limit"` // 0 = unpaced

	// FirstState is the registered id of the state seeded at bootstrap.
	FirstState string `yaml:"first_state"`

	// InputManagers are registered input source ids, polled in this order.
	InputManagers []string `yaml:"input_managers"`

	Audio   AudioConfig   `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
// FirstState is left empty: every game must name its own.
func Default() *Config {
	return &Config{
		RootPath:     DefaultRootPath,
		WindowTitle:  DefaultWindowTitle,
		WindowWidth:  DefaultWindowWidth,
		WindowHeight: DefaultWindowHeight,
		Fullscreen:   false,
		VSync:        true,
		FPSLimit:     DefaultFPSLimit,
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 1.0,
			SFXVolume:    1.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate fills in defaults for unset options and fails if no first state
// is configured. Defaults are applied before the check so RootPath is always
// usable for error reporting.
func (c *Config) Validate() error {
	if c.RootPath == "" {
		c.RootPath = DefaultRootPath
	}
	if c.WindowTitle == "" {
		c.WindowTitle = DefaultWindowTitle
	}
	if c.WindowWidth <= 0 {
		c.WindowWidth = DefaultWindowWidth
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = DefaultWindowHeight
	}
	if c.FPSLimit < 0 {
		c.FPSLimit = 0
	}
	if c.FirstState == "" {
		return fmt.Errorf("%w: first state not defined", ErrConfiguration)
	}
	return nil
}
