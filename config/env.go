// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strconv"
)

// getEnvString returns the value of EnvPrefix+key, or defaultVal if unset.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}

	return defaultVal
}

// getEnvInt returns EnvPrefix+key parsed as int, or defaultVal if unset or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}

	return defaultVal
}

// applyEnvOverrides replaces fields of cfg with any environment values present.
func applyEnvOverrides(cfg *Config) {
	cfg.Workers = getEnvInt("WORKERS", cfg.Workers)
	cfg.BlockBudgetBytes = getEnvInt("BLOCK_BUDGET", cfg.BlockBudgetBytes)
	cfg.QueueOrder = getEnvString("QUEUE_ORDER", cfg.QueueOrder)
	cfg.LogLevel = getEnvString("LOG_LEVEL", cfg.LogLevel)
}

// FromEnv returns Default() with environment overrides applied.
// The result is not validated.
func FromEnv() Config {
	cfg := Default()
	applyEnvOverrides(&cfg)

	return cfg
}
