package config

import (
	"bytes"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

type (
	// ReplaceRule is one find and replace instruction applied by the
	// replace subcommand.
	ReplaceRule struct {
		Search           string `yaml:"search"`
		Replace          string `yaml:"replace"`
		Regex            bool   `yaml:"regex,omitempty"`
		UseSubstitutions bool   `yaml:"use_substitutions,omitempty"`
	}

	// EditingConfig groups edit session defaults.
	EditingConfig struct {
		Author string        `yaml:"author,omitempty"`
		Rules  []ReplaceRule `yaml:"rules,omitempty"`
	}

	Config struct {
		Version int           `yaml:"version"`
		Editing EditingConfig `yaml:"editing"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// defaultConfig returns the configuration used when no file is given.
func defaultConfig() *Config {
	return &Config{
		Version: 1,
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
			FileLogger:    LoggerConfig{Level: "none", Mode: "append"},
		},
	}
}

// LoadConfiguration reads configuration from a yaml file, falling back to
// defaults when fname is empty. Unknown keys are rejected.
func LoadConfiguration(fname string) (*Config, error) {
	cfg := defaultConfig()
	if len(fname) == 0 {
		return cfg, nil
	}

	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration (%s): %w", fname, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration (%s): %w", fname, err)
	}

	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported configuration version %d in %s", cfg.Version, fname)
	}
	return cfg, nil
}

// Dump serializes configuration back to yaml, suitable for the dumpconfig
// subcommand.
func Dump(cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = defaultConfig()
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize configuration: %w", err)
	}
	return data, nil
}
