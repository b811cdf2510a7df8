// Package config loads mkpasswd defaults from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConflictingAlphabets is returned when a file sets both alphabet and custom.
var ErrConflictingAlphabets = errors.New("alphabet and custom are mutually exclusive")

// Config holds defaults read from the configuration file. Zero values mean
// "not set".
type Config struct {
	Length   int    `yaml:"length"`
	Count    int    `yaml:"count"`
	Alphabet string `yaml:"alphabet"`
	Custom   string `yaml:"custom"`
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "mkpasswd", "config.yaml"), nil
}

// Load reads the configuration at path. A missing file yields an empty
// Config when optional is true.
func Load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML configuration. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges. Alphabet names are resolved by the caller.
func (c *Config) Validate() error {
	if c.Length < 0 {
		return fmt.Errorf("length must not be negative, got %d", c.Length)
	}
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", c.Count)
	}
	if c.Alphabet != "" && c.Custom != "" {
		return ErrConflictingAlphabets
	}
	return nil
}
