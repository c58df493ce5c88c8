// SPDX-License-Identifier: MIT

package pool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tasksSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lazymat_pool_tasks_submitted_total",
		Help: "Total number of tasks accepted by worker pools.",
	})

	tasksCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lazymat_pool_tasks_completed_total",
		Help: "Total number of tasks finished by pool workers, including panicked ones.",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lazymat_pool_queue_depth",
		Help: "Number of queued tasks not yet picked up by a worker.",
	})

	taskPanics = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lazymat_pool_task_panics_total",
		Help: "Total number of tasks that panicked.",
	})
)
