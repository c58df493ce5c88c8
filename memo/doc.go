// SPDX-License-Identifier: MIT

// Package memo provides Cell, a one-shot memoized computation with
// single-flight semantics.
//
// A Cell moves through Unstarted -> Scheduled -> Running -> Done exactly
// once. The computation runs at most once no matter how many goroutines
// schedule or wait on it; every waiter observes the same value or the same
// error, and a failure is cached forever.
//
// Scheduling hands the computation to an Executor (typically a bounded
// worker pool). A waiter that finds the cell still Scheduled claims it and
// runs it inline instead of blocking. This keeps nested computations making
// progress even when every pool worker is itself waiting on a child cell.
//
// Complexity:
//   - State/Peek: O(1) under a mutex; Wait on a Done cell: one atomic load.
package memo
