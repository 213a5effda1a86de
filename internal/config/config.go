// Package config loads run configuration from an optional YAML file and
// merges it with built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mouse-blink/mistype/internal/domain/modifiers"
)

// Config holds every tunable of a mutation run. Table override sections
// replace their built-in counterpart wholesale when present.
type Config struct {
	Seed       int64    `yaml:"seed"`
	Likelihood float64  `yaml:"likelihood"`
	Modifiers  []string `yaml:"modifiers"`
	Interleave bool     `yaml:"interleave"`
	MaxBugs    int      `yaml:"max_bugs"`
	Out        string   `yaml:"out"`
	Parallel   int      `yaml:"parallel"`

	Primitives map[string][]string `yaml:"primitives,omitempty"`
	DictKeys   map[string][]string `yaml:"dict_keys,omitempty"`
	Generic1   []string            `yaml:"generic1,omitempty"`
	Generic2   []string            `yaml:"generic2,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Seed:       24,
		Likelihood: 0.25,
		Modifiers:  []string{"change"},
		Out:        ".mistype",
		Parallel:   1,
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file is not an error; an empty path means defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // Path is user-provided by design
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Likelihood < 0 || c.Likelihood > 1 {
		return fmt.Errorf("likelihood %g outside [0, 1]", c.Likelihood)
	}

	if c.Parallel < 0 {
		return fmt.Errorf("parallel %d is negative", c.Parallel)
	}

	for _, name := range c.Modifiers {
		if _, err := modifiers.ByName(name, nil); err != nil {
			return err
		}
	}

	return nil
}

// Table materializes the replacement policy, applying any overrides from
// the config file on top of the built-in table.
func (c *Config) Table() *modifiers.Table {
	table := modifiers.DefaultTable()

	if c.Primitives != nil {
		table.Primitives = c.Primitives
	}

	if c.DictKeys != nil {
		table.DictKeys = c.DictKeys
	}

	if c.Generic1 != nil {
		table.Generic1 = toSet(c.Generic1)
	}

	if c.Generic2 != nil {
		table.Generic2 = toSet(c.Generic2)
	}

	return table
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	return set
}
