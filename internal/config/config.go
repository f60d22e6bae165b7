// Package config resolves tool settings from the optional .swiftconcur.yaml
// project file. Command-line flags override file values, which override the
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the working
// directory.
const FileName = ".swiftconcur.yaml"

// Default values.
const (
	DefaultContext   = 3
	DefaultThreshold = -1 // no threshold
	DefaultFormat    = "auto"
)

// Settings holds the resolved tool configuration.
type Settings struct {
	Context   int    `yaml:"context"`
	Threshold int    `yaml:"threshold"`
	Filter    string `yaml:"filter"`
	Format    string `yaml:"format"`
	Baseline  string `yaml:"baseline"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Context:   DefaultContext,
		Threshold: DefaultThreshold,
		Format:    DefaultFormat,
	}
}

// Load reads settings from the config file in dir, falling back to defaults
// when no file exists. A present but unreadable or malformed file is an
// error; silently ignoring a broken config hides misconfiguration.
func Load(dir string) (Settings, error) {
	settings := DefaultSettings()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := settings.validate(); err != nil {
		return settings, fmt.Errorf("config %s: %w", path, err)
	}
	return settings, nil
}

func (s Settings) validate() error {
	if s.Context < 0 {
		return fmt.Errorf("context must be >= 0, got %d", s.Context)
	}
	switch s.Format {
	case "auto", "json", "markdown", "slack", "terminal":
	default:
		return fmt.Errorf("unknown format %q", s.Format)
	}
	switch s.Filter {
	case "", "actor_isolation", "sendable_conformance", "data_race", "performance_regression":
	default:
		return fmt.Errorf("unknown filter %q", s.Filter)
	}
	return nil
}
