package future

import (
	"time"

	"github.com/arvane/fiberflow/pkg/fiber"
)

// SharedFuture is the multi-consumer counterpart to Future: any number of
// copies may call Get concurrently, each blocking independently and all
// observing the same value once it is ready (I2). Unlike Future, Get does
// not invalidate it.
type SharedFuture[T any] struct {
	state *sharedState[T]
}

// Valid reports whether this shared future still refers to a state.
func (f SharedFuture[T]) Valid() bool { return f.state != nil }

// Get blocks the calling fiber until the result is ready and returns it.
// The SharedFuture remains valid and may be read again afterward.
func (f SharedFuture[T]) Get(t *fiber.This) (T, error) {
	var zero T
	if f.state == nil {
		return zero, ErrNoState
	}
	if f.state.waitFiber(t) == fiber.Interrupted {
		return zero, fiber.ErrInterrupted
	}
	return f.state.get()
}

// GetHost is Get for a non-fiber caller.
func (f SharedFuture[T]) GetHost() (T, error) {
	var zero T
	if f.state == nil {
		return zero, ErrNoState
	}
	f.state.waitHost()
	return f.state.get()
}

// Wait blocks the calling fiber until the result is ready.
func (f SharedFuture[T]) Wait(t *fiber.This) error {
	if f.state == nil {
		return ErrNoState
	}
	if f.state.waitFiber(t) == fiber.Interrupted {
		return fiber.ErrInterrupted
	}
	return nil
}

// WaitUntil is Wait with a deadline.
func (f SharedFuture[T]) WaitUntil(t *fiber.This, deadline time.Time) (Status, error) {
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

// IsReady reports whether the result is available without blocking.
func (f SharedFuture[T]) IsReady() bool {
	return f.state != nil && f.state.isReady()
}
