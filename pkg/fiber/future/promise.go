package future

import stdsync "sync"

// Promise is the producer side of a one-shot result handoff (C6). It owns
// a shared state until SetValue, SetException, or Close is called.
//
// Go has no destructors, so the automatic "broken promise" delivery that
// fires when a boost::fibers::promise goes out of scope without being
// satisfied is instead explicit here: callers that might abandon a
// Promise without settling it should `defer p.Close()`, the same
// explicit-Close convention as fiber.Scheduler.Close and
// fiber.SchedulerPool.Close.
type Promise[T any] struct {
	mu              stdsync.Mutex
	state           *sharedState[T]
	futureRetrieved bool
}

// NewPromise creates a promise with a fresh, unsatisfied shared state.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{state: newSharedState[T]()}
}

// GetFuture returns the Future bound to this promise's shared state.
// Calling it more than once reports ErrFutureAlreadyRetrieved (spec §6).
func (p *Promise[T]) GetFuture() (Future[T], error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == nil {
		return Future[T]{}, ErrNoState
	}
	if p.futureRetrieved {
		return Future[T]{}, ErrFutureAlreadyRetrieved
	}
	p.futureRetrieved = true
	return Future[T]{state: p.state}, nil
}

// SetValue satisfies the promise with v. Returns
// ErrPromiseAlreadySatisfied if already settled (I1).
func (p *Promise[T]) SetValue(v T) error {
	p.mu.Lock()
	s := p.state
	p.mu.Unlock()
	if s == nil {
		return ErrNoState
	}
	return s.setValue(v)
}

// SetException satisfies the promise with an exception value instead of
// a result.
func (p *Promise[T]) SetException(err error) error {
	p.mu.Lock()
	s := p.state
	p.mu.Unlock()
	if s == nil {
		return ErrNoState
	}
	return s.setException(err)
}

// Close releases the promise's reference to its shared state. If the
// state was never settled, every waiting or future consumer receives
// ErrBrokenPromise (I2, P3) — the Go stand-in for the original's
// destructor-triggered broken_promise delivery. Close is idempotent.
func (p *Promise[T]) Close() error {
	p.mu.Lock()
	s := p.state
	p.state = nil
	p.mu.Unlock()
	if s == nil {
		return nil
	}
	if !s.isReady() {
		s.ownerDestroyed()
	}
	return nil
}
