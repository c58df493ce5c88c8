// SPDX-License-Identifier: MIT

// Package config holds engine tuning knobs and their sources.
//
// Priority: environment variables > YAML file > Default().
//
// Supported environment variables (see EnvPrefix):
//   - LAZYMAT_WORKERS: worker pool size (int, >= 1)
//   - LAZYMAT_BLOCK_BUDGET: per-tile byte budget for block decomposition (int, >= 1)
//   - LAZYMAT_QUEUE_ORDER: "fifo" or "lifo"
//   - LAZYMAT_LOG_LEVEL: zerolog level name ("debug", "info", "warn", ...)
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// EnvPrefix is prepended to every environment variable name.
	EnvPrefix = "LAZYMAT_"

	// DefaultBlockBudgetBytes bounds the bytes of one square tile.
	DefaultBlockBudgetBytes = 128 * 1024

	// DefaultQueueOrder is the worker pool dequeue order.
	DefaultQueueOrder = "fifo"

	// DefaultLogLevel keeps the engine quiet unless something goes wrong.
	DefaultLogLevel = "warn"
)

// Config is the complete engine configuration.
type Config struct {
	Workers          int    `yaml:"workers"`
	BlockBudgetBytes int    `yaml:"block_budget_bytes"`
	QueueOrder       string `yaml:"queue_order"`
	LogLevel         string `yaml:"log_level"`
}

// Default returns the built-in configuration: one worker per CPU.
func Default() Config {
	return Config{
		Workers:          runtime.NumCPU(),
		BlockBudgetBytes: DefaultBlockBudgetBytes,
		QueueOrder:       DefaultQueueOrder,
		LogLevel:         DefaultLogLevel,
	}
}

// ValidationError reports a single invalid configuration field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: invalid %s %v: %s", e.Field, e.Value, e.Message)
}

// Validate checks every field and returns the first *ValidationError found.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return &ValidationError{Field: "workers", Value: c.Workers, Message: "must be at least 1"}
	}
	if c.BlockBudgetBytes < 1 {
		return &ValidationError{Field: "block_budget_bytes", Value: c.BlockBudgetBytes, Message: "must be at least 1"}
	}
	switch strings.ToLower(c.QueueOrder) {
	case "fifo", "lifo":
	default:
		return &ValidationError{Field: "queue_order", Value: c.QueueOrder, Message: `must be "fifo" or "lifo"`}
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return &ValidationError{Field: "log_level", Value: c.LogLevel, Message: err.Error()}
	}

	return nil
}
