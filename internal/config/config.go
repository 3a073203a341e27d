// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML configuration of the audmeter command.
package config

import (
	"fmt"
	"os"

	"github.com/ik5/audmeter/analysis"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Analysis analysis.Config `yaml:"analysis"`
	// Workers is the number of files analysed at once.
	Workers int       `yaml:"workers"`
	Log     LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	JSON   bool   `yaml:"json"`
	Colors bool   `yaml:"colors"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Analysis: analysis.DefaultConfig(),
		Workers:  1,
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads path over Default. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML document over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if err := cfg.Analysis.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
