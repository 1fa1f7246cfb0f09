// Package config handles exporter configuration loading and management.
package config

import (
	"fmt"

	"github.com/mobigfx/m3gexport/pkg/m3g"
)

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds the scene conversion and output settings.
type ExportConfig struct {
	// Lighting generates normals and lit materials.
	Lighting bool `yaml:"lighting"`
	// AmbientLight synthesizes a fill light when lighting is on.
	AmbientLight bool `yaml:"ambient_light"`
	// Fog carries the scene's fog block into appearances.
	Fog bool `yaml:"fog"`
	// AutoScale fits vertex quantization ranges to the data.
	AutoScale bool `yaml:"autoscale"`
	// Compress enables zlib compression of content sections.
	Compress bool `yaml:"compress"`
	// Version pins the output format version ("1.0" or "1.1");
	// empty selects the lowest version the content allows.
	Version string `yaml:"version"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Lighting:     true,
			AmbientLight: true,
			Fog:          true,
			AutoScale:    true,
			Compress:     false,
			Version:      "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// FormatVersion resolves the configured version pin.
func (e ExportConfig) FormatVersion() (m3g.Version, error) {
	switch e.Version {
	case "":
		return m3g.VersionAuto, nil
	case "1.0":
		return m3g.Version10, nil
	case "1.1":
		return m3g.Version11, nil
	default:
		return m3g.Version{}, fmt.Errorf("unsupported format version %q", e.Version)
	}
}
