package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies the default parameters of the segmentation driver
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Preprocessing.Alpha != 1000 || cfg.Preprocessing.Sigma != 5.48 {
		t.Errorf("Unexpected preprocessing defaults %+v", cfg.Preprocessing)
	}
	if cfg.Evolution.Iterations != 10 || cfg.Evolution.Smoothing != 2 {
		t.Errorf("Unexpected evolution defaults %+v", cfg.Evolution)
	}
	if cfg.Evolution.ThresholdRatio != 0.8 || cfg.Evolution.Balloon != -1 {
		t.Errorf("Unexpected balloon defaults %+v", cfg.Evolution)
	}
	if cfg.ROI.Mode != "point" {
		t.Errorf("Expected default mode point, got %s", cfg.ROI.Mode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default configuration is invalid: %v", err)
	}
}

// TestLoadMissingFile checks that a missing file yields the defaults
func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Evolution.Iterations != DefaultConfig().Evolution.Iterations {
		t.Errorf("Expected default iterations, got %d", cfg.Evolution.Iterations)
	}
}

// TestSaveAndLoad writes a modified configuration and reads it back
func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Evolution.Iterations = 42
	cfg.Evolution.Balloon = 1.5
	cfg.ROI.Mode = "ellipse"
	cfg.Output.OverlayColor = "#00ff00"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if loaded.Evolution.Iterations != 42 || loaded.Evolution.Balloon != 1.5 {
		t.Errorf("Evolution settings not preserved: %+v", loaded.Evolution)
	}
	if loaded.ROI.Mode != "ellipse" || loaded.Output.OverlayColor != "#00ff00" {
		t.Errorf("ROI or output settings not preserved")
	}
}

// TestPartialFileKeepsDefaults checks that unspecified keys keep their defaults
func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("evolution:\n  iterations: 3\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Evolution.Iterations != 3 {
		t.Errorf("Expected 3 iterations, got %d", cfg.Evolution.Iterations)
	}
	if cfg.Preprocessing.Sigma != 5.48 {
		t.Errorf("Expected default sigma, got %f", cfg.Preprocessing.Sigma)
	}
}

// TestInvalidConfig verifies that bad values are rejected on load
func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("preprocessing:\n  sigma: 0\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}

	if err := os.WriteFile(path, []byte("evolution: [1, 2"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("Expected a parse error for malformed YAML")
	}
}

// TestCreateDefaultConfigFile checks that the default file can be loaded back
func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")
	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Preprocessing.Alpha != 1000 {
		t.Errorf("Expected alpha 1000, got %f", cfg.Preprocessing.Alpha)
	}
}
