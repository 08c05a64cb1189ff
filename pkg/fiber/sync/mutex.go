package sync

import (
	stdsync "sync"
	"time"

	"github.com/arvane/fiberflow/pkg/fiber"
)

// Mutex is a cooperative, non-recursive mutex for fibers on one
// scheduler (spec §4.4). Lock parks the caller in a FIFO waiter queue if
// the mutex is held; Unlock dequeues the first live waiter and transfers
// ownership to it directly, skipping any waiter that raced a timeout or
// an interrupt (see package doc).
type Mutex struct {
	mu      stdsync.Mutex
	locked  bool
	ownerID fiber.ID
	waiters []*fiber.Waiter
}

// Lock blocks the calling fiber until the mutex is free, then takes it.
// It fails with fiber.ErrInterrupted if the calling fiber is interrupted
// while parked; in that case the mutex is guaranteed not to have been
// acquired (spec scenario S6).
func (m *Mutex) Lock(t *fiber.This) error {
	m.mu.Lock()
	if !m.locked {
		m.locked = true
		m.ownerID = t.ID()
		m.mu.Unlock()
		return nil
	}
	w := t.NewWaiter()
	m.waiters = append(m.waiters, w)
	m.mu.Unlock()

	if disp := t.Suspend(w, time.Time{}); disp == fiber.Interrupted {
		m.mu.Lock()
		m.removeWaiter(w)
		m.mu.Unlock()
		return fiber.ErrInterrupted
	}
	return nil
}

// TryLock attempts to acquire the mutex without blocking.
func (m *Mutex) TryLock(t *fiber.This) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked {
		return false
	}
	m.locked = true
	m.ownerID = t.ID()
	return true
}

// Unlock releases the mutex. It fails with fiber.ErrNotOwner if the
// calling fiber does not currently hold it.
func (m *Mutex) Unlock(t *fiber.This) error {
	m.mu.Lock()
	if !m.locked || m.ownerID != t.ID() {
		m.mu.Unlock()
		return fiber.ErrNotOwner
	}
	for len(m.waiters) > 0 {
		next := m.waiters[0]
		m.waiters = m.waiters[1:]
		if fiber.Wake(next) {
			m.ownerID = next.ID()
			m.mu.Unlock()
			return nil
		}
	}
	m.locked = false
	m.ownerID = fiber.NoID
	m.mu.Unlock()
	return nil
}

func (m *Mutex) removeWaiter(w *fiber.Waiter) {
	for i, c := range m.waiters {
		if c == w {
			m.waiters = append(m.waiters[:i], m.waiters[i+1:]...)
			return
		}
	}
}

// Locker adapts Mutex to a scoped-lock helper in the style of spec §6's
// "scoped lock helper" — use with a defer immediately after Lock
// succeeds.
type Locker struct {
	m *Mutex
	t *fiber.This
}

// NewLocker locks m and returns a Locker whose Unlock releases it; it
// mirrors std::unique_lock used with boost::fibers::condition_variable.
func NewLocker(t *fiber.This, m *Mutex) (*Locker, error) {
	if err := m.Lock(t); err != nil {
		return nil, err
	}
	return &Locker{m: m, t: t}, nil
}

// Unlock releases the underlying mutex.
func (l *Locker) Unlock() error { return l.m.Unlock(l.t) }
