package fiber

import (
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	gferrors "github.com/arvane/fiberflow/pkg/common/errors"
)

// SchedulerPool runs a fixed number of Schedulers concurrently, one per
// backing goroutine, and round-robins submitted fiber entry functions
// across them. It is adapted from the teacher's
// pkg/scheduling/workerpool: the same fixed-worker-count /
// bounded-intake / graceful-shutdown shape, but each worker drives its
// own cooperative Scheduler.RunOnce loop instead of pulling bare Task
// values off a shared queue — a Scheduler is itself single-goroutine by
// design (spec §5), so the pool is the mechanism for spreading many
// independent fiber workloads across multiple OS threads.
type SchedulerPool struct {
	workers []*poolWorker
	next    atomic.Uint64
	closed  atomic.Bool
}

type poolWorker struct {
	sched  *Scheduler
	intake chan func(*This)
	stop   chan struct{}
	done   chan struct{}
}

// PoolConfig configures a SchedulerPool.
type PoolConfig struct {
	// Size is the number of Schedulers (and backing goroutines) in the
	// pool. Must be positive.
	Size int
	// IntakeSize bounds how many pending Submit calls a single worker's
	// intake channel holds before Submit blocks. Zero means unbuffered.
	IntakeSize int
}

// NewSchedulerPool starts a pool of size schedulers, each with an
// unbuffered intake.
func NewSchedulerPool(size int) (*SchedulerPool, error) {
	return NewSchedulerPoolWithConfig(PoolConfig{Size: size})
}

// NewSchedulerPoolWithConfig starts a pool per the given configuration.
func NewSchedulerPoolWithConfig(cfg PoolConfig) (*SchedulerPool, error) {
	if cfg.Size <= 0 {
		return nil, gferrors.NewValidationError("fiber", "Size", cfg.Size, "must be positive").
			WithHint("Size is the number of schedulers backing the pool")
	}
	p := &SchedulerPool{workers: make([]*poolWorker, cfg.Size)}
	for i := range p.workers {
		w := &poolWorker{
			sched:  NewScheduler(),
			intake: make(chan func(*This), cfg.IntakeSize),
			stop:   make(chan struct{}),
			done:   make(chan struct{}),
		}
		p.workers[i] = w
		go w.run()
	}
	return p, nil
}

// run drives one worker's scheduler: while it has runnable or sleeping
// fibers, it keeps ticking; once idle, it blocks on either new intake or
// a stop signal.
func (w *poolWorker) run() {
	defer close(w.done)
	for {
		select {
		case entry, ok := <-w.intake:
			if !ok {
				return
			}
			w.sched.Spawn(entry)
			continue
		case <-w.stop:
			return
		default:
		}

		if w.sched.RunOnce() {
			continue
		}

		select {
		case entry, ok := <-w.intake:
			if !ok {
				return
			}
			w.sched.Spawn(entry)
		case <-w.stop:
			return
		}
	}
}

// Submit runs entry as a fresh fiber on whichever scheduler the pool
// assigns next, round-robin. Returns ErrSchedulerClosed if the pool has
// been closed.
func (p *SchedulerPool) Submit(entry func(*This)) error {
	if p.closed.Load() {
		return ErrSchedulerClosed
	}
	idx := p.next.Add(1) % uint64(len(p.workers))
	w := p.workers[idx]
	select {
	case w.intake <- entry:
		return nil
	case <-w.stop:
		return ErrSchedulerClosed
	}
}

// Registries returns every worker scheduler's metrics registry, ready to
// be combined with prometheus.Gatherers for a single process-wide scrape
// endpoint.
func (p *SchedulerPool) Registries() []prometheus.Gatherer {
	out := make([]prometheus.Gatherer, len(p.workers))
	for i, w := range p.workers {
		out[i] = w.sched.Registry()
	}
	return out
}

// Size returns the number of schedulers in the pool.
func (p *SchedulerPool) Size() int { return len(p.workers) }

// Close stops accepting new work and waits for every worker's current
// fiber, if any, to finish its run loop iteration before returning. It
// does not forcibly terminate outstanding fibers; callers are expected
// to have joined or detached every Handle they care about first, the
// same contract Scheduler.Close documents.
func (p *SchedulerPool) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return fmt.Errorf("fiber: pool already closed")
	}
	for _, w := range p.workers {
		close(w.stop)
	}
	for _, w := range p.workers {
		<-w.done
		w.sched.Close()
	}
	return nil
}
