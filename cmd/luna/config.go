package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the runner configuration, loaded from a YAML file.
type Config struct {
	// Env lists the environment variable names host.env may read.
	// Empty means no restriction.
	Env []string `yaml:"env"`

	// Store is the directory for the persistent key-value store backing
	// the host.kv_* builtins. Empty selects an in-memory store.
	Store string `yaml:"store"`

	// Globals are values defined as script globals before the script
	// runs. Values take the YAML scalar/sequence/mapping shapes.
	Globals map[string]any `yaml:"globals"`

	// Entry is the script function invoked by 'run --call' when no
	// name is given on the flag.
	Entry string `yaml:"entry"`

	// Args are the host values passed to the entry function, in order.
	Args []any `yaml:"args"`
}

// loadConfig reads a config file. An empty path yields the zero config.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
