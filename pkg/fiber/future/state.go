package future

import (
	stdsync "sync"
	"time"

	"github.com/arvane/fiberflow/pkg/fiber"
)

// Status reports why a timed wait on a shared state returned (spec §6).
type Status int

const (
	// StatusReady means the state holds a value or exception.
	StatusReady Status = iota
	// StatusTimeout means the deadline passed before the state became ready.
	StatusTimeout
	// StatusDeferred is reserved for a deferred launch policy; Async
	// always uses the immediate policy, so no code path returns this
	// today, but the constant is part of the status enumeration spec §6
	// names in full.
	StatusDeferred
)

// sharedState is the one-shot result cell C5 names: a value becomes
// available at most once (I1) and every consumer sees the same one (I2).
// It is intentionally not generic over a "void" case the way
// boost::fibers::detail::shared_state is template-specialized — Go
// callers instantiate sharedState[struct{}] for a void result instead
// (spec §3 of SPEC_FULL.md).
//
// The waiter bookkeeping follows the same FIFO-list-plus-stale-skip shape
// as pkg/fiber/sync's primitives, but a shared state also has to serve
// waiters that are not fibers at all — a host goroutine blocked in
// Future.GetHost — so readyCh is a second, goroutine-native notification
// path that Set* always closes alongside waking any fiber waiters.
//
// Spec §3's dual producer/consumer refcounts exist to decide when to
// deallocate the state and when to fire owner_destroyed. Go's garbage
// collector already owns deallocation timing, and Promise is move-only
// by convention with exactly one producer, so the only refcount-shaped
// decision left is "did the sole producer settle before dropping its
// reference" — Promise.Close's isReady check — which needs no counter.
type sharedState[T any] struct {
	mu    stdsync.Mutex
	ready bool
	val   T
	err   error

	readyCh chan struct{}
	waiters []*fiber.Waiter
}

func newSharedState[T any]() *sharedState[T] {
	metrics.outstanding.Inc()
	return &sharedState[T]{readyCh: make(chan struct{})}
}

// setValue stores v and makes the state ready. Returns
// ErrPromiseAlreadySatisfied if the state was already ready (I1).
func (s *sharedState[T]) setValue(v T) error {
	return s.settle(v, nil)
}

// setException stores err as the state's exception value.
func (s *sharedState[T]) setException(err error) error {
	var zero T
	return s.settle(zero, err)
}

func (s *sharedState[T]) settle(v T, err error) error {
	s.mu.Lock()
	if s.ready {
		s.mu.Unlock()
		return ErrPromiseAlreadySatisfied
	}
	s.val = v
	s.err = err
	s.ready = true
	waiters := s.waiters
	s.waiters = nil
	close(s.readyCh)
	s.mu.Unlock()

	metrics.outstanding.Dec()
	if err == ErrBrokenPromise {
		metrics.broken.Inc()
	}
	for _, w := range waiters {
		fiber.Wake(w)
	}
	return nil
}

// ownerDestroyed marks the state broken if no producer ever called
// setValue/setException (I2, P3). A no-op if already ready.
func (s *sharedState[T]) ownerDestroyed() {
	s.settle(*new(T), ErrBrokenPromise)
}

// waitFiber parks the calling fiber until the state is ready, or reports
// fiber.Interrupted if interrupted while parked. It is the cooperative
// counterpart to waitHost and must only be called from inside a fiber.
func (s *sharedState[T]) waitFiber(t *fiber.This) fiber.Disposition {
	return s.waitFiberUntil(t, time.Time{})
}

func (s *sharedState[T]) waitFiberUntil(t *fiber.This, deadline time.Time) fiber.Disposition {
	s.mu.Lock()
	if s.ready {
		s.mu.Unlock()
		return fiber.Woken
	}
	w := t.NewWaiter()
	s.waiters = append(s.waiters, w)
	s.mu.Unlock()

	start := time.Now()
	disp := t.Suspend(w, deadline)
	metrics.waitDuration.Observe(time.Since(start).Seconds())
	if disp != fiber.Woken {
		s.mu.Lock()
		s.removeWaiter(w)
		s.mu.Unlock()
	}
	return disp
}

// waitHost blocks the calling (non-fiber) goroutine until the state is
// ready. Unlike waitFiber, this is a plain channel receive: there is no
// scheduler to cooperatively yield to, so the calling goroutine is simply
// put to sleep by the Go runtime until readyCh closes.
func (s *sharedState[T]) waitHost() {
	start := time.Now()
	<-s.readyCh
	metrics.waitDuration.Observe(time.Since(start).Seconds())
}

// waitHostUntil is waitHost with a deadline.
func (s *sharedState[T]) waitHostUntil(deadline time.Time) Status {
	d := time.Until(deadline)
	if d <= 0 {
		select {
		case <-s.readyCh:
			return StatusReady
		default:
			return StatusTimeout
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-s.readyCh:
		return StatusReady
	case <-timer.C:
		return StatusTimeout
	}
}

// get returns the stored value and exception once the state is ready.
// Callers must have already waited.
func (s *sharedState[T]) get() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val, s.err
}

// isReady reports whether the state holds a value or exception yet,
// without blocking.
func (s *sharedState[T]) isReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *sharedState[T]) removeWaiter(w *fiber.Waiter) {
	for i, cw := range s.waiters {
		if cw == w {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			return
		}
	}
}
