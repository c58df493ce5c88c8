// SPDX-License-Identifier: MIT

// Package matrix - the concurrent optimization engine.
//
// An Engine owns the worker pool that realizes lazy nodes, the tile budget used
// by block decomposition, and the instrumentation around every optimization:
// a span, a duration histogram, counters, and debug/error logs.
//
// Every lazy node is bound to one Engine at construction (WithEngine, inherited
// from a lazy input, or DefaultEngine). Closing an engine stops its workers;
// nodes bound to it still compute, inline, on the goroutine that reads them.

package matrix

import (
	"context"
	"fmt"
	"math"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lazymat/config"
	"github.com/katalvlaran/lazymat/logging"
	"github.com/katalvlaran/lazymat/memo"
	"github.com/katalvlaran/lazymat/pool"
)

// Engine schedules and instruments lazy node optimizations.
type Engine struct {
	pool        *pool.Pool
	log         zerolog.Logger
	tracer      trace.Tracer
	blockBudget int
	stats       engineStats
}

var _ memo.Executor = (*Engine)(nil)

// Stats is a snapshot of an engine's optimization counters.
type Stats struct {
	Optimizations        int64 // every routine run, any kind
	ChainReductions      int64 // greedy reductions of chains with 3+ operands
	BlockDecompositions  int64 // pairwise products split into tiles
	DirectProducts       int64 // triple-loop kernels
	TileMaterializations int64 // padded operand tiles
	Sums                 int64
	Failures             int64
}

type engineStats struct {
	optimizations, chainReductions, blockDecompositions atomic.Int64
	directProducts, tiles, sums, failures               atomic.Int64
}

// NewEngine starts an engine with its own worker pool.
func NewEngine(opts ...EngineOption) *Engine {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := logging.Component(o.logger, "engine")

	return &Engine{
		pool: pool.New(o.workers,
			pool.WithOrder(o.order),
			pool.WithLogger(logging.Component(o.logger, "pool")),
		),
		log:         log,
		tracer:      o.tracer,
		blockBudget: o.blockBudget,
	}
}

// NewEngineFromConfig validates cfg and builds an engine logging to stderr at
// cfg.LogLevel. opts are applied after the configuration.
func NewEngineFromConfig(cfg config.Config, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	order, err := pool.ParseOrder(cfg.QueueOrder)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	base := []EngineOption{
		WithWorkers(cfg.Workers),
		WithBlockBudget(cfg.BlockBudgetBytes),
		WithQueueOrder(order),
		WithLogger(log),
	}

	return NewEngine(append(base, opts...)...), nil
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// DefaultEngine returns the process-wide engine, built on first use from
// config.FromEnv(). An invalid environment falls back to config.Default().
func DefaultEngine() *Engine {
	defaultOnce.Do(func() {
		e, err := NewEngineFromConfig(config.FromEnv())
		if err != nil {
			e, _ = NewEngineFromConfig(config.Default())
			e.log.Warn().Err(err).Msg("invalid LAZYMAT_* environment, using defaults")
		}
		defaultEngine = e
	})

	return defaultEngine
}

// Submit implements memo.Executor.
func (e *Engine) Submit(task func()) error { return e.pool.Submit(task) }

// Workers returns the pool size.
func (e *Engine) Workers() int { return e.pool.Workers() }

// BlockBudget returns the per-tile byte budget.
func (e *Engine) BlockBudget() int { return e.blockBudget }

// Close drains queued work and stops the workers. Later optimizations run
// inline on their readers.
func (e *Engine) Close() { e.pool.Close() }

// Stats returns a snapshot of the counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Optimizations:        e.stats.optimizations.Load(),
		ChainReductions:      e.stats.chainReductions.Load(),
		BlockDecompositions:  e.stats.blockDecompositions.Load(),
		DirectProducts:       e.stats.directProducts.Load(),
		TileMaterializations: e.stats.tiles.Load(),
		Sums:                 e.stats.sums.Load(),
		Failures:             e.stats.failures.Load(),
	}
}

// tileEdge returns floor(sqrt(budget/elemSize)), at least 1.
func (e *Engine) tileEdge(elemSize uintptr) int {
	s := int(math.Sqrt(float64(e.blockBudget) / float64(elemSize)))
	if s < 1 {
		return 1
	}

	return s
}

func sizeOf[T Number]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// runOptimization wraps one node routine with a span, metrics, stats and logs.
// A panic inside fn becomes ErrIllegalState wrapping a *memo.PanicError.
func runOptimization[T Number](e *Engine, kind string, rows, cols int, fn func(ctx context.Context) (*Dense[T], error)) (d *Dense[T], err error) {
	ctx, span := e.tracer.Start(context.Background(), "lazymat."+kind,
		trace.WithAttributes(
			attribute.Int("lazymat.rows", rows),
			attribute.Int("lazymat.cols", cols),
		))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			pe := &memo.PanicError{Value: r, Stack: debug.Stack()}
			d, err = nil, fmt.Errorf("%s %dx%d: %w: %w", kind, rows, cols, ErrIllegalState, pe)
		}
		elapsed := time.Since(start)

		e.stats.optimizations.Add(1)
		optimizationsTotal.WithLabelValues(kind).Inc()
		optimizationDuration.WithLabelValues(kind).Observe(elapsed.Seconds())

		if err != nil {
			e.stats.failures.Add(1)
			optimizationFailures.WithLabelValues(kind).Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			e.log.Error().Err(err).Str("kind", kind).Int("rows", rows).Int("cols", cols).Msg("optimization failed")
		} else {
			e.log.Debug().Str("kind", kind).Int("rows", rows).Int("cols", cols).Dur("elapsed", elapsed).Msg("optimization done")
		}
		span.End()
	}()

	return fn(ctx)
}
