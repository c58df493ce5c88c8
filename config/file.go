// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML configuration file, layers it over Default(),
// applies environment overrides and validates the result.
// Fields absent from the file keep their defaults.
func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse decodes YAML over Default() without consulting the environment.
// Unknown keys are rejected.
func Parse(raw []byte) (Config, error) {
	cfg := Default()

	var file Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	merge(&cfg, file)

	return cfg, nil
}

// merge copies every non-zero field of src into dst.
func merge(dst *Config, src Config) {
	if src.Workers != 0 {
		dst.Workers = src.Workers
	}
	if src.BlockBudgetBytes != 0 {
		dst.BlockBudgetBytes = src.BlockBudgetBytes
	}
	if src.QueueOrder != "" {
		dst.QueueOrder = src.QueueOrder
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
}
