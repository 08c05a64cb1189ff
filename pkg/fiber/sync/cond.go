package sync

import (
	stdsync "sync"
	"time"

	"github.com/arvane/fiberflow/pkg/fiber"
)

// Cond is a fiber-aware condition variable (spec §4.4). Wait atomically
// releases the associated Mutex, parks the caller in the Cond's own FIFO
// waiter set, and reacquires the mutex before returning. This core does
// not generate spurious wakeups, but callers must still loop on their
// predicate to be robust to interruption, per spec §4.4.
type Cond struct {
	mu      stdsync.Mutex
	waiters []*fiber.Waiter
}

// NewCond returns a new condition variable.
func NewCond() *Cond { return &Cond{} }

// Wait releases m, blocks until notified, and reacquires m before
// returning. Fails with fiber.ErrInterrupted if interrupted while
// parked; m is then still reacquired before Wait returns. If the
// reacquire itself is interrupted, Wait returns fiber.ErrInterrupted
// without holding m.
func (c *Cond) Wait(t *fiber.This, m *Mutex) error {
	_, err := c.wait(t, m, time.Time{})
	return err
}

// WaitUntil is Wait with a deadline; it returns (fiber.TimedOut, nil) if
// the deadline passes before a notification, or the disposition and a
// nil error on a normal wakeup, or an undefined disposition and
// fiber.ErrInterrupted on interruption. m is reacquired before returning,
// except when the reacquire itself is interrupted: then the error is
// fiber.ErrInterrupted and m is not held.
func (c *Cond) WaitUntil(t *fiber.This, m *Mutex, deadline time.Time) (fiber.Disposition, error) {
	return c.wait(t, m, deadline)
}

// WaitFor is WaitUntil relative to now.
func (c *Cond) WaitFor(t *fiber.This, m *Mutex, d time.Duration) (fiber.Disposition, error) {
	return c.wait(t, m, time.Now().Add(d))
}

func (c *Cond) wait(t *fiber.This, m *Mutex, deadline time.Time) (fiber.Disposition, error) {
	w := t.NewWaiter()
	c.mu.Lock()
	c.waiters = append(c.waiters, w)
	c.mu.Unlock()

	if err := m.Unlock(t); err != nil {
		c.mu.Lock()
		c.removeWaiter(w)
		c.mu.Unlock()
		return fiber.Woken, err
	}

	disp := t.Suspend(w, deadline)
	if disp != fiber.Woken {
		c.mu.Lock()
		c.removeWaiter(w)
		c.mu.Unlock()
	}

	if lockErr := m.Lock(t); lockErr != nil {
		// The reacquire itself was interrupted; report that over the
		// original disposition, since the caller is about to assume it
		// holds m again and must be told it does not.
		return disp, fiber.ErrInterrupted
	}

	if disp == fiber.Interrupted {
		return disp, fiber.ErrInterrupted
	}
	return disp, nil
}

// NotifyOne wakes at most one waiter, in FIFO order, skipping any stale
// entry that already left via timeout or interruption.
func (c *Cond) NotifyOne() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.waiters) > 0 {
		next := c.waiters[0]
		c.waiters = c.waiters[1:]
		if fiber.Wake(next) {
			return
		}
	}
}

// NotifyAll wakes every waiter, in FIFO order.
func (c *Cond) NotifyAll() {
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()
	for _, w := range waiters {
		fiber.Wake(w)
	}
}

func (c *Cond) removeWaiter(w *fiber.Waiter) {
	for i, cw := range c.waiters {
		if cw == w {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return
		}
	}
}
