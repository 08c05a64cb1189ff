package future

import (
	"time"

	"github.com/arvane/fiberflow/pkg/fiber"
)

// Future is the single-consumer consumer side of a shared state (C6).
// Its zero value is a valid, empty future: Valid and IsReady report
// false, Share returns an empty SharedFuture, and the Get and Wait
// methods return ErrNoState until it is replaced by a value obtained
// from Promise.GetFuture, PackagedTask.GetFuture, or Async.
type Future[T any] struct {
	state *sharedState[T]
}

// Valid reports whether this future still refers to a shared state. Get
// and Share both consume the future, leaving it invalid afterward — the
// same one-shot-retrieval discipline as std::future.
func (f *Future[T]) Valid() bool { return f.state != nil }

// Get blocks the calling fiber until the result is ready, then returns
// it and invalidates the future. Returns fiber.ErrInterrupted if
// interrupted while waiting, or ErrNoState if already invalid.
func (f *Future[T]) Get(t *fiber.This) (T, error) {
	var zero T
	s := f.state
	if s == nil {
		return zero, ErrNoState
	}
	disp := s.waitFiber(t)
	f.state = nil
	if disp == fiber.Interrupted {
		return zero, fiber.ErrInterrupted
	}
	v, err := s.get()
	return v, err
}

// GetHost is Get for a non-fiber caller: it blocks the calling goroutine
// directly rather than parking a fiber, since there is no scheduler to
// yield to.
func (f *Future[T]) GetHost() (T, error) {
	var zero T
	s := f.state
	if s == nil {
		return zero, ErrNoState
	}
	f.state = nil
	s.waitHost()
	return s.get()
}

// Wait blocks the calling fiber until the result is ready, without
// invalidating the future — Get may still be called afterward.
func (f *Future[T]) Wait(t *fiber.This) error {
	if f.state == nil {
		return ErrNoState
	}
	if f.state.waitFiber(t) == fiber.Interrupted {
		return fiber.ErrInterrupted
	}
	return nil
}

// WaitUntil is Wait with a deadline, reporting StatusTimeout instead of
// blocking indefinitely.
func (f *Future[T]) WaitUntil(t *fiber.This, deadline time.Time) (Status, error) {
	if f.state == nil {
		return StatusTimeout, ErrNoState
	}
	switch f.state.waitFiberUntil(t, deadline) {
	case fiber.Woken:
		return StatusReady, nil
	case fiber.TimedOut:
		return StatusTimeout, nil
	default:
		return StatusTimeout, fiber.ErrInterrupted
	}
}

// WaitFor is WaitUntil relative to now.
func (f *Future[T]) WaitFor(t *fiber.This, d time.Duration) (Status, error) {
	return f.WaitUntil(t, time.Now().Add(d))
}

// WaitHostUntil is WaitUntil for a non-fiber caller.
func (f *Future[T]) WaitHostUntil(deadline time.Time) (Status, error) {
	if f.state == nil {
		return StatusTimeout, ErrNoState
	}
	return f.state.waitHostUntil(deadline), nil
}

// IsReady reports whether the result is available without blocking.
func (f *Future[T]) IsReady() bool {
	return f.state != nil && f.state.isReady()
}

// Share converts this future into a SharedFuture that may be copied and
// waited on by multiple consumers, invalidating the original future —
// mirroring std::future::share().
func (f *Future[T]) Share() SharedFuture[T] {
	s := f.state
	f.state = nil
	return SharedFuture[T]{state: s}
}
