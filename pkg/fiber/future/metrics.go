package future

import "github.com/prometheus/client_golang/prometheus"

// futureMetrics instruments the shared-state lifecycle across every
// Promise/Future/SharedFuture/PackagedTask in the process, following the
// same private-registry construction as pkg/fiber's schedulerMetrics.
// Unlike a Scheduler, a shared state has no natural owning object to hang
// a registry off of — Promise/Future are small value-ish handles meant to
// be passed around cheaply — so this is the one place in the module with
// a package-level metrics singleton rather than a per-instance one.
type futureMetrics struct {
	registry *prometheus.Registry

	outstanding  prometheus.Gauge
	broken       prometheus.Counter
	waitDuration prometheus.Histogram
}

func newFutureMetrics() *futureMetrics {
	registry := prometheus.NewRegistry()
	m := &futureMetrics{
		registry: registry,
		outstanding: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fiberflow",
			Subsystem: "future",
			Name:      "shared_states_outstanding",
			Help:      "Number of shared states created but not yet settled or abandoned.",
		}),
		broken: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fiberflow",
			Subsystem: "future",
			Name:      "broken_promises_total",
			Help:      "Total number of shared states settled by owner abandonment rather than a value or exception.",
		}),
		waitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fiberflow",
			Subsystem: "future",
			Name:      "wait_duration_seconds",
			Help:      "Time spent parked waiting on a shared state to become ready.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	registry.MustRegister(m.outstanding, m.broken, m.waitDuration)
	return m
}

var metrics = newFutureMetrics()

// Registry exposes the package-wide future metrics so callers can fold
// them into a larger registry via prometheus.Gatherers, mirroring
// Scheduler.Registry.
func Registry() prometheus.Gatherer { return metrics.registry }
