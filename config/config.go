// Package config loads the service configuration from YAML or JSON files
// with environment-variable overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kennelops/kennelplan/core/fatigue"
	"github.com/kennelops/kennelplan/core/metrics"
	"github.com/kennelops/kennelplan/core/planner"
	"github.com/kennelops/kennelplan/core/report"
	"github.com/kennelops/kennelplan/infra/mqtt"
	"github.com/kennelops/kennelplan/infra/storage"
)

// APIConfig defines the HTTP API listener.
type APIConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Config aggregates all service settings.
type Config struct {
	Storage storage.Config    `json:"storage"`
	Fatigue fatigue.Config    `json:"fatigue"`
	Scoring planner.Policy    `json:"scoring"`
	Report  report.Thresholds `json:"report"`
	Metrics metrics.Config    `json:"metrics"`
	MQTT    mqtt.Config       `json:"mqtt"`
	API     APIConfig         `json:"api"`
}

// Load reads the configuration at path. The format is inferred from the file
// extension; environment variables prefixed with KP_ override file values,
// with double underscores separating nesting levels.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("KP_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "kp_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every section at its defaults. Used
// when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Storage.SetDefaults()
	c.Fatigue.SetDefaults()
	c.Scoring.SetDefaults()
	c.Report.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
	c.API.SetDefaults()
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if err := c.Fatigue.Validate(); err != nil {
		return fmt.Errorf("fatigue: %w", err)
	}
	return nil
}
