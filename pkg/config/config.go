// Package config provides configuration loading and management for medcontour.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for out of range settings
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration loaded from YAML
type Config struct {
	// Speed field parameters
	Preprocessing struct {
		// Alpha scales the gradient magnitude before inversion
		Alpha float64 `yaml:"alpha"`

		// Sigma is the standard deviation of the Gaussian smoothing
		Sigma float64 `yaml:"sigma"`
	} `yaml:"preprocessing"`

	// Level set evolution parameters
	Evolution struct {
		// Iterations is the number of evolution steps
		Iterations int `yaml:"iterations"`

		// Smoothing is the number of curvature steps per iteration
		Smoothing int `yaml:"smoothing"`

		// ThresholdRatio multiplies the mean ROI intensity to obtain the balloon threshold
		ThresholdRatio float64 `yaml:"thresholdRatio"`

		// Balloon is the signed balloon force, negative values shrink the region
		Balloon float64 `yaml:"balloon"`
	} `yaml:"evolution"`

	// Region of interest parameters
	ROI struct {
		// Mode is one of point, rectangle or ellipse
		Mode string `yaml:"mode"`
	} `yaml:"roi"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`

		// OverlayColor is the contour colour as a name or #RRGGBB
		OverlayColor string `yaml:"overlayColor"`

		// OverlayOpacity is the weight of the contour overlay when blending
		OverlayOpacity float64 `yaml:"overlayOpacity"`

		// SaveFrames stores an overlay for every iteration
		SaveFrames bool `yaml:"saveFrames"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Preprocessing.Alpha = 1000
	cfg.Preprocessing.Sigma = 5.48

	cfg.Evolution.Iterations = 10
	cfg.Evolution.Smoothing = 2
	cfg.Evolution.ThresholdRatio = 0.8
	cfg.Evolution.Balloon = -1

	cfg.ROI.Mode = "point"

	cfg.Output.Verbose = false
	cfg.Output.OverlayColor = "red"
	cfg.Output.OverlayOpacity = 0.5
	cfg.Output.SaveFrames = false

	return cfg
}

// Validate checks the numeric ranges of the configuration
func (c *Config) Validate() error {
	if c.Preprocessing.Sigma <= 0 {
		return fmt.Errorf("%w: preprocessing.sigma must be positive", ErrInvalidConfig)
	}
	if c.Preprocessing.Alpha < 0 {
		return fmt.Errorf("%w: preprocessing.alpha must not be negative", ErrInvalidConfig)
	}
	if c.Evolution.Iterations < 0 {
		return fmt.Errorf("%w: evolution.iterations must not be negative", ErrInvalidConfig)
	}
	if c.Evolution.Smoothing < 0 {
		return fmt.Errorf("%w: evolution.smoothing must not be negative", ErrInvalidConfig)
	}
	if c.Output.OverlayOpacity < 0 || c.Output.OverlayOpacity > 1 {
		return fmt.Errorf("%w: output.overlayOpacity must be within [0, 1]", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
