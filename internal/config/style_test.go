package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultStyleSize(t *testing.T) {
	w, h := DefaultStyle().Size()
	if w != 1440 || h != 640 {
		t.Errorf("Expected 1440x640, got %dx%d", w, h)
	}
}

func TestLoadStyleKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	if err := os.WriteFile(path, []byte("dpi: 50\ninterval: 200ms\n"), 0644); err != nil {
		t.Fatal(err)
	}

	style, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("LoadStyle failed: %v", err)
	}
	if style.DPI != 50 {
		t.Errorf("Expected dpi 50, got %d", style.DPI)
	}
	if style.Interval != 200*time.Millisecond {
		t.Errorf("Expected interval 200ms, got %s", style.Interval)
	}
	if style.FigWidth != 14.4 || style.BallTeam != "football" {
		t.Errorf("Defaults lost: %+v", style)
	}
}

func TestStyleWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	style := DefaultStyle()
	style.Palette = []string{"#000000", "#ff0000"}

	if err := WriteStyle(style, path); err != nil {
		t.Fatalf("WriteStyle failed: %v", err)
	}
	loaded, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("LoadStyle failed: %v", err)
	}
	if len(loaded.Palette) != 2 || loaded.Palette[1] != "#ff0000" {
		t.Errorf("Palette not preserved: %v", loaded.Palette)
	}
}

func TestStyleValidate(t *testing.T) {
	bad := DefaultStyle()
	bad.DPI = 0
	if err := bad.Validate(); err == nil {
		t.Error("Expected error for zero dpi")
	}
}

func TestConfigInterval(t *testing.T) {
	cfg := &Config{Style: DefaultStyle(), Tween: 3}
	if got := cfg.Interval(); got != 25*time.Millisecond {
		t.Errorf("Expected 25ms, got %s", got)
	}
}
