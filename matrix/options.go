// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for engines and lazy nodes.
//
// This file defines:
//   - EngineOption: knobs for NewEngine (workers, tile budget, queue order, logger, tracer).
//   - Option: per-node settings for Add/Mul/Chain (which engine runs the node).
//   - documented defaults (constants).
//
// Design goals:
//   - No hidden globals beyond DefaultEngine(), which is built once from the environment.
//   - Safe by construction: WithX panics on nonsensical values (programmer error).
package matrix

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lazymat/config"
	"github.com/katalvlaran/lazymat/pool"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultBlockBudgetBytes bounds the bytes of one square tile in block decomposition.
	DefaultBlockBudgetBytes = config.DefaultBlockBudgetBytes

	// tracerName identifies spans emitted by this package.
	tracerName = "github.com/katalvlaran/lazymat/matrix"
)

// ---------- Engine options ----------

type engineOptions struct {
	workers     int
	blockBudget int
	order       pool.Order
	logger      zerolog.Logger
	tracer      trace.Tracer
}

func defaultEngineOptions() engineOptions {
	return engineOptions{
		workers:     runtime.NumCPU(),
		blockBudget: DefaultBlockBudgetBytes,
		order:       pool.FIFO,
		logger:      zerolog.Nop(),
		tracer:      otel.Tracer(tracerName),
	}
}

// EngineOption configures NewEngine.
type EngineOption func(*engineOptions)

// WithWorkers sets the worker pool size. Panics if n < 1.
func WithWorkers(n int) EngineOption {
	if n < 1 {
		panic(fmt.Sprintf("matrix: WithWorkers(%d): need at least one worker", n))
	}

	return func(o *engineOptions) { o.workers = n }
}

// WithBlockBudget sets the per-tile byte budget. Small budgets force tiling
// on small operands. Panics if bytes < 1.
func WithBlockBudget(bytes int) EngineOption {
	if bytes < 1 {
		panic(fmt.Sprintf("matrix: WithBlockBudget(%d): budget must be positive", bytes))
	}

	return func(o *engineOptions) { o.blockBudget = bytes }
}

// WithQueueOrder selects FIFO or LIFO scheduling of queued optimizations.
func WithQueueOrder(order pool.Order) EngineOption {
	return func(o *engineOptions) { o.order = order }
}

// WithLogger sets the engine logger (zerolog.Nop by default).
func WithLogger(l zerolog.Logger) EngineOption {
	return func(o *engineOptions) { o.logger = l }
}

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(t trace.Tracer) EngineOption {
	return func(o *engineOptions) { o.tracer = t }
}

// ---------- Node options ----------

type nodeOptions struct {
	engine *Engine
}

// Option configures a lazy node.
type Option func(*nodeOptions)

// WithEngine runs the node (and nodes derived from it) on e.
func WithEngine(e *Engine) Option {
	return func(o *nodeOptions) { o.engine = e }
}

// engineHolder is implemented by every lazy node.
type engineHolder interface{ engineOf() *Engine }

// resolveEngine picks, in order: an explicit WithEngine, the engine of the
// first lazy input, DefaultEngine().
func resolveEngine[T Number](opts []Option, inputs ...View[T]) *Engine {
	var o nodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine != nil {
		return o.engine
	}
	for _, v := range inputs {
		if h, ok := v.(engineHolder); ok {
			return h.engineOf()
		}
	}

	return DefaultEngine()
}
