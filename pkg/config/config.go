// Package config provides configuration loading and management for
// rtcontour. It handles loading configuration from YAML files and
// provides clinically sensible default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the editor configuration loaded from YAML.
type Config struct {
	// Brush parameters
	Brush struct {
		// DefaultRadius is the initial brush radius in mm
		DefaultRadius float64 `yaml:"defaultRadius"`

		// MinRadius and MaxRadius clamp interactive resizing, in mm
		MinRadius float64 `yaml:"minRadius"`
		MaxRadius float64 `yaml:"maxRadius"`

		// CircleSegments controls the brush footprint quality
		CircleSegments int `yaml:"circleSegments"`
	} `yaml:"brush"`

	// Geometry parameters
	Geometry struct {
		// CleanTolerance is the post-clip vertex collapse distance in mm
		CleanTolerance float64 `yaml:"cleanTolerance"`

		// SliceTolerance is the contour-to-slice fuzz match distance in mm
		SliceTolerance float64 `yaml:"sliceTolerance"`
	} `yaml:"geometry"`

	// Display parameters
	Display struct {
		// CanvasWidth and CanvasHeight size the preview surface in px
		CanvasWidth  int `yaml:"canvasWidth"`
		CanvasHeight int `yaml:"canvasHeight"`

		// FillAlpha is the contour fill opacity (0-255)
		FillAlpha uint8 `yaml:"fillAlpha"`

		// CursorWidth is the brush cursor ring width in px
		CursorWidth float64 `yaml:"cursorWidth"`
	} `yaml:"display"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default brush parameters
	cfg.Brush.DefaultRadius = 5.0
	cfg.Brush.MinRadius = 0.5
	cfg.Brush.MaxRadius = 50.0
	cfg.Brush.CircleSegments = 32

	// Set default geometry parameters
	cfg.Geometry.CleanTolerance = 0.01
	cfg.Geometry.SliceTolerance = 2.0

	// Set default display parameters
	cfg.Display.CanvasWidth = 512
	cfg.Display.CanvasHeight = 512
	cfg.Display.FillAlpha = 96
	cfg.Display.CursorWidth = 2.0

	return cfg
}

// Validate checks the configuration for values the editor cannot work
// with.
func (cfg *Config) Validate() error {
	if cfg.Brush.DefaultRadius <= 0 {
		return fmt.Errorf("brush.defaultRadius must be positive, got %v", cfg.Brush.DefaultRadius)
	}
	if cfg.Brush.MinRadius <= 0 || cfg.Brush.MaxRadius < cfg.Brush.MinRadius {
		return fmt.Errorf("brush radius range [%v, %v] is invalid", cfg.Brush.MinRadius, cfg.Brush.MaxRadius)
	}
	if cfg.Brush.CircleSegments < 3 {
		return fmt.Errorf("brush.circleSegments must be at least 3, got %d", cfg.Brush.CircleSegments)
	}
	if cfg.Geometry.SliceTolerance <= 0 {
		return fmt.Errorf("geometry.sliceTolerance must be positive, got %v", cfg.Geometry.SliceTolerance)
	}
	if cfg.Display.CanvasWidth <= 0 || cfg.Display.CanvasHeight <= 0 {
		return fmt.Errorf("display canvas %dx%d is invalid", cfg.Display.CanvasWidth, cfg.Display.CanvasHeight)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
