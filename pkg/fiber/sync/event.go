package sync

import (
	stdsync "sync"
	"time"

	"github.com/arvane/fiberflow/pkg/fiber"
)

// Event is a fiber-aware one-shot event: Set fires it exactly once,
// releasing every fiber currently blocked in Wait and making every
// subsequent Wait return immediately. It is the third synchronization
// primitive spec §4.4 lists alongside the mutex and condition variable.
type Event struct {
	mu      stdsync.Mutex
	fired   bool
	waiters []*fiber.Waiter
}

// Wait blocks until Set is called, or returns immediately if it already
// has been.
func (e *Event) Wait(t *fiber.This) error {
	e.mu.Lock()
	if e.fired {
		e.mu.Unlock()
		return nil
	}
	w := t.NewWaiter()
	e.waiters = append(e.waiters, w)
	e.mu.Unlock()

	if disp := t.Suspend(w, time.Time{}); disp == fiber.Interrupted {
		e.mu.Lock()
		e.removeWaiter(w)
		e.mu.Unlock()
		return fiber.ErrInterrupted
	}
	return nil
}

// WaitFor is Wait with a deadline.
func (e *Event) WaitFor(t *fiber.This, d time.Duration) (fiber.Disposition, error) {
	e.mu.Lock()
	if e.fired {
		e.mu.Unlock()
		return fiber.Woken, nil
	}
	w := t.NewWaiter()
	e.waiters = append(e.waiters, w)
	e.mu.Unlock()

	disp := t.Suspend(w, time.Now().Add(d))
	if disp != fiber.Woken {
		e.mu.Lock()
		e.removeWaiter(w)
		e.mu.Unlock()
	}
	if disp == fiber.Interrupted {
		return disp, fiber.ErrInterrupted
	}
	return disp, nil
}

// Set fires the event. Calling it more than once is a safe no-op.
func (e *Event) Set() {
	e.mu.Lock()
	if e.fired {
		e.mu.Unlock()
		return
	}
	e.fired = true
	waiters := e.waiters
	e.waiters = nil
	e.mu.Unlock()
	for _, w := range waiters {
		fiber.Wake(w)
	}
}

// IsSet reports whether Set has been called.
func (e *Event) IsSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fired
}

func (e *Event) removeWaiter(w *fiber.Waiter) {
	for i, cw := range e.waiters {
		if cw == w {
			e.waiters = append(e.waiters[:i], e.waiters[i+1:]...)
			return
		}
	}
}
