package fiber

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// schedulerMetrics instruments one Scheduler, following the same
// register-on-construct pattern as the teacher's
// pkg/scheduling/workerpool/metrics.go, but into a registry private to
// the scheduler, so nothing is unregistered on Close; and always-on: a cooperative
// scheduler's own bookkeeping is cheap enough that, unlike the worker
// pool's per-task Prometheus wrapper, there is no un-instrumented variant
// to opt out into.
type schedulerMetrics struct {
	registry prometheus.Registerer

	spawned   prometheus.Counter
	terminated prometheus.Counter
	switches  prometheus.Counter
	sleepers  prometheus.Gauge

	mu sync.Mutex
}

func newSchedulerMetrics() *schedulerMetrics {
	registry := prometheus.NewRegistry()
	m := &schedulerMetrics{
		registry: registry,
		spawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fiberflow",
			Subsystem: "scheduler",
			Name:      "fibers_spawned_total",
			Help:      "Total number of fibers spawned on this scheduler.",
		}),
		terminated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fiberflow",
			Subsystem: "scheduler",
			Name:      "fibers_terminated_total",
			Help:      "Total number of fibers that have terminated on this scheduler.",
		}),
		switches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fiberflow",
			Subsystem: "scheduler",
			Name:      "context_switches_total",
			Help:      "Total number of baton handoffs performed by the run loop.",
		}),
		sleepers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fiberflow",
			Subsystem: "scheduler",
			Name:      "sleeping_fibers",
			Help:      "Current number of fibers parked in the sleep queue.",
		}),
	}
	registry.MustRegister(m.spawned, m.terminated, m.switches, m.sleepers)
	return m
}

func (m *schedulerMetrics) observeSpawn()    { m.spawned.Inc() }
func (m *schedulerMetrics) observeTerminate() { m.terminated.Inc() }
func (m *schedulerMetrics) observeSwitch()    { m.switches.Inc() }
func (m *schedulerMetrics) observeSleepers(n int) { m.sleepers.Set(float64(n)) }

// Registry exposes the scheduler's private Prometheus registry so callers
// can fold it into a larger registry via prometheus.Gatherers, mirroring
// the teacher's per-component registry convention in pkg/metrics.
func (s *Scheduler) Registry() prometheus.Gatherer {
	return s.metrics.registry.(*prometheus.Registry)
}

func (m *schedulerMetrics) close() {
	// The registry is private to this scheduler and simply dropped;
	// nothing outlives it to unregister from.
}
