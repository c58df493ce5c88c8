// SPDX-License-Identifier: MIT

package matrix

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Kind labels shared by metrics, spans and logs.
const (
	kindChain  = "chain"  // Product: flatten + greedy reduction (or the 2-operand base case)
	kindBlock  = "block"  // optimizer-derived pairwise product, tiled when large
	kindDirect = "direct" // triple-loop kernel
	kindSum    = "sum"
	kindTile   = "tile" // padded operand tile
)

var (
	optimizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lazymat_optimizations_total",
		Help: "Total number of node optimizations run, by kind.",
	}, []string{"kind"})

	optimizationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lazymat_optimization_failures_total",
		Help: "Total number of node optimizations that published an error, by kind.",
	}, []string{"kind"})

	optimizationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lazymat_optimization_duration_seconds",
		Help:    "Wall time of node optimizations, by kind.",
		Buckets: prometheus.ExponentialBuckets(1e-5, 4, 12),
	}, []string{"kind"})
)
