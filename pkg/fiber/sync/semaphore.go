package sync

import (
	stdsync "sync"
	"time"

	"github.com/arvane/fiberflow/pkg/fiber"

	gferrors "github.com/arvane/fiberflow/pkg/common/errors"
)

// Semaphore is a fiber-aware counting semaphore, adapted from the
// teacher's goroutine-parking concurrency limiter
// (pkg/ratelimit/concurrency) onto fiber suspension: Acquire blocks by
// parking the calling fiber's FCB instead of a bare channel receive, and
// Release hands freed permits to FIFO waiters via fiber.Wake, skipping
// stale entries exactly as Mutex.Unlock does. It is not named by spec.md,
// but is the natural third member of the "mutex, condition variable,
// ..." family (§4.4) for bounding how many fibers may concurrently block
// on some external resource.
type Semaphore struct {
	mu        stdsync.Mutex
	capacity  int
	available int
	waiters   []semWaiter
}

type semWaiter struct {
	n int
	w *fiber.Waiter
}

// NewSemaphore creates a semaphore with the given capacity, fully
// available. It returns an error rather than panicking on a non-positive
// capacity, following the teacher's *Safe constructor convention.
func NewSemaphore(capacity int) (*Semaphore, error) {
	if capacity <= 0 {
		return nil, gferrors.NewValidationError("fiber/sync", "capacity", capacity, "must be positive").
			WithHint("capacity determines how many fibers may hold a permit concurrently")
	}
	return &Semaphore{capacity: capacity, available: capacity}, nil
}

// TryAcquire acquires n permits without blocking, reporting whether it
// succeeded.
func (s *Semaphore) TryAcquire(n int) bool {
	if n <= 0 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.available >= n {
		s.available -= n
		return true
	}
	return false
}

// Acquire blocks the calling fiber until n permits are available.
func (s *Semaphore) Acquire(t *fiber.This, n int) error {
	if n <= 0 {
		return nil
	}
	s.mu.Lock()
	if s.available >= n {
		s.available -= n
		s.mu.Unlock()
		return nil
	}
	w := t.NewWaiter()
	s.waiters = append(s.waiters, semWaiter{n: n, w: w})
	s.mu.Unlock()

	if disp := t.Suspend(w, time.Time{}); disp == fiber.Interrupted {
		s.mu.Lock()
		s.removeWaiter(w)
		s.mu.Unlock()
		return fiber.ErrInterrupted
	}
	return nil
}

// Release returns n permits, waking FIFO waiters that can now be
// satisfied.
func (s *Semaphore) Release(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	s.available += n
	s.notifyWaiters()
	s.mu.Unlock()
}

// notifyWaiters grants permits to as many head-of-queue waiters as
// available allows, in FIFO order, skipping stale entries. Caller must
// hold s.mu.
func (s *Semaphore) notifyWaiters() {
	for len(s.waiters) > 0 {
		head := s.waiters[0]
		if head.n > s.available {
			return
		}
		s.waiters = s.waiters[1:]
		if fiber.Wake(head.w) {
			s.available -= head.n
		}
	}
}

// Available returns the number of permits currently free.
func (s *Semaphore) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

func (s *Semaphore) removeWaiter(w *fiber.Waiter) {
	for i, c := range s.waiters {
		if c.w == w {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			return
		}
	}
}
