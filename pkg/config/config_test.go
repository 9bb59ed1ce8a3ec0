package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig ensures the defaults are self-consistent and pass
// validation.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Brush.DefaultRadius != 5.0 {
		t.Errorf("Expected defaultRadius=5.0, got %f", cfg.Brush.DefaultRadius)
	}
	if cfg.Brush.CircleSegments != 32 {
		t.Errorf("Expected circleSegments=32, got %d", cfg.Brush.CircleSegments)
	}
	if cfg.Geometry.SliceTolerance != 2.0 {
		t.Errorf("Expected sliceTolerance=2.0, got %f", cfg.Geometry.SliceTolerance)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config failed validation: %v", err)
	}
}

// TestLoadConfigMissingFile verifies that a missing file falls back to
// defaults without error.
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig on missing file returned error: %v", err)
	}
	if cfg.Brush.DefaultRadius != 5.0 {
		t.Errorf("Expected default radius, got %f", cfg.Brush.DefaultRadius)
	}
}

// TestSaveLoadRoundTrip saves a modified config and loads it back.
func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Brush.DefaultRadius = 7.5
	cfg.Display.CanvasWidth = 1024

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Brush.DefaultRadius != 7.5 {
		t.Errorf("Expected radius=7.5 after round trip, got %f", loaded.Brush.DefaultRadius)
	}
	if loaded.Display.CanvasWidth != 1024 {
		t.Errorf("Expected canvasWidth=1024 after round trip, got %d", loaded.Display.CanvasWidth)
	}
	// Untouched sections keep their defaults
	if loaded.Geometry.SliceTolerance != 2.0 {
		t.Errorf("Expected sliceTolerance=2.0 after round trip, got %f", loaded.Geometry.SliceTolerance)
	}
}

// TestLoadConfigRejectsInvalid verifies that a config failing
// validation is rejected rather than silently used.
func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("brush:\n  defaultRadius: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for negative brush radius, got nil")
	}
}

// TestLoadConfigRejectsBadYAML verifies parse errors surface.
func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("brush: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected YAML parse error, got nil")
	}
}
