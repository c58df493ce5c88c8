// Package lazymat is a lazily evaluated matrix algebra engine: build matrix
// expressions for free, pay for them once, on first read.
//
// What is in the box?
//
//	• Dense storage plus no-copy views: transpose, diagonal, submatrix,
//	  zero-padded resize, block concatenation and element-type casts.
//	• Lazy Sum and Product nodes that compute exactly once, no matter how many
//	  goroutines read them, and publish failures the same way as values.
//	• A chain optimizer that flattens nested products, merges them greedily
//	  and splits large pairwise products into tiles run in parallel.
//	• A bounded worker pool and a one-shot memo cell underneath it all.
//
// Packages:
//
//	matrix/  Dense, views, lazy nodes, the Engine, the optimizer
//	memo/    single-flight, cache-forever computation cell
//	pool/    fixed-size worker pool with FIFO/LIFO queueing
//	config/  engine settings from defaults, YAML and LAZYMAT_* variables
//	logging/ zerolog construction shared by every package
//
// Quick start:
//
//	a, _ := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
//	p, _ := matrix.Mul[float64](a, matrix.Transpose[float64](a))
//	v, _ := p.At(0, 1) // computed here: 1*3 + 2*4 = 11
//
// See examples/ for a runnable pipeline.
package lazymat
