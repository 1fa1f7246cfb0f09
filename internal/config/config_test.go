package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mobigfx/m3gexport/pkg/m3g"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Export.Lighting {
		t.Error("expected lighting to be on by default")
	}
	if !cfg.Export.AmbientLight {
		t.Error("expected ambient light synthesis to be on by default")
	}
	if !cfg.Export.AutoScale {
		t.Error("expected autoscale to be on by default")
	}
	if cfg.Export.Compress {
		t.Error("expected compression to be off by default")
	}
	if cfg.Export.Version != "" {
		t.Errorf("expected automatic version selection, got %q", cfg.Export.Version)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
export:
  lighting: false
  compress: true
  version: "1.1"
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Export.Lighting {
		t.Error("expected lighting override from file")
	}
	if !cfg.Export.Compress {
		t.Error("expected compression override from file")
	}
	if cfg.Export.Version != "1.1" {
		t.Errorf("expected version 1.1, got %q", cfg.Export.Version)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), Overrides{}); err == nil {
		t.Error("expected error for explicit missing config file")
	}
}

func TestOverridesApply(t *testing.T) {
	cfg := Default()

	debug := true
	lighting := false
	version := "1.0"
	Overrides{Debug: &debug, Lighting: &lighting, Version: &version}.Apply(cfg)

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
	if cfg.Export.Lighting {
		t.Error("expected lighting disabled by override")
	}
	if cfg.Export.Version != "1.0" {
		t.Errorf("expected version 1.0, got %q", cfg.Export.Version)
	}
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    m3g.Version
		wantErr bool
	}{
		{"", m3g.VersionAuto, false},
		{"1.0", m3g.Version10, false},
		{"1.1", m3g.Version11, false},
		{"2.0", m3g.Version{}, true},
	}
	for _, tt := range tests {
		got, err := ExportConfig{Version: tt.in}.FormatVersion()
		if tt.wantErr {
			if err == nil {
				t.Errorf("version %q: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("version %q: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("version %q: got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Export.Compress = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Export.Compress {
		t.Error("expected compression setting to round-trip")
	}
}
