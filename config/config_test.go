// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lazymat/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, 128*1024, cfg.BlockBudgetBytes)
	assert.Equal(t, "fifo", cfg.QueueOrder)
	assert.Equal(t, "warn", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*config.Config)
		field string
	}{
		{"zero workers", func(c *config.Config) { c.Workers = 0 }, "workers"},
		{"negative budget", func(c *config.Config) { c.BlockBudgetBytes = -1 }, "block_budget_bytes"},
		{"bad order", func(c *config.Config) { c.QueueOrder = "random" }, "queue_order"},
		{"bad level", func(c *config.Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mut(&cfg)
			err := cfg.Validate()
			var ve *config.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	cfg := config.Default()
	cfg.QueueOrder = "LIFO"
	cfg.LogLevel = "DEBUG"
	assert.NoError(t, cfg.Validate(), "case-insensitive names")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LAZYMAT_WORKERS", "3")
	t.Setenv("LAZYMAT_BLOCK_BUDGET", "4096")
	t.Setenv("LAZYMAT_QUEUE_ORDER", "lifo")
	t.Setenv("LAZYMAT_LOG_LEVEL", "debug")

	cfg := config.FromEnv()
	assert.Equal(t, config.Config{
		Workers:          3,
		BlockBudgetBytes: 4096,
		QueueOrder:       "lifo",
		LogLevel:         "debug",
	}, cfg)
}

func TestFromEnv_IgnoresGarbageNumbers(t *testing.T) {
	t.Setenv("LAZYMAT_WORKERS", "many")
	cfg := config.FromEnv()
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte("workers: 2\nqueue_order: lifo\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "lifo", cfg.QueueOrder)
	assert.Equal(t, config.DefaultBlockBudgetBytes, cfg.BlockBudgetBytes, "absent keys keep defaults")

	cfg, err = config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = config.Parse([]byte("wrokers: 2\n"))
	require.Error(t, err, "unknown keys are rejected")

	_, err = config.Parse([]byte("workers: [1, 2]\n"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lazymat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 5\nblock_budget_bytes: 2048\n"), 0o600))

	t.Setenv("LAZYMAT_WORKERS", "7")
	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Workers, "environment wins over file")
	assert.Equal(t, 2048, cfg.BlockBudgetBytes)

	_, err = config.LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("block_budget_bytes: -5\n"), 0o600))
	_, err = config.LoadFile(bad)
	var ve *config.ValidationError
	require.ErrorAs(t, err, &ve)
}
