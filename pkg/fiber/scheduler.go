package fiber

import (
	"container/heap"
	"context"
	"sync"
	"time"

	gfcontext "github.com/arvane/fiberflow/pkg/common/context"
)

// Scheduler is one cooperative run loop, owning exactly one ready set (via
// its Policy), one sleep queue, and at most one running fiber at a time —
// spec §5's "cooperative, single-threaded per scheduler instance." A
// Scheduler is meant to be driven from one host goroutine; synchronization
// primitives and the future package may be poked from other goroutines
// (producer-side calls, Interrupt), which is why sched.mu exists at all.
type Scheduler struct {
	mu     sync.Mutex
	policy Policy
	sleep  sleepHeap
	nextID ID
	closed bool
	wake   chan struct{} // best-effort external nudge; see waitForWork

	metrics *schedulerMetrics
}

// sleepItem pairs an fcb with its wakeup deadline for the sleep heap.
type sleepItem struct {
	f        *fcb
	deadline time.Time
}

type sleepHeap []*sleepItem

func (h sleepHeap) Len() int            { return len(h) }
func (h sleepHeap) Less(i, j int) bool  { return h[i].deadline.Before(h[j].deadline) }
func (h sleepHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *sleepHeap) Push(x interface{}) { *h = append(*h, x.(*sleepItem)) }
func (h *sleepHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// NewScheduler constructs a Scheduler using the default round-robin
// priority policy (spec §4.2.1).
func NewScheduler() *Scheduler {
	return NewSchedulerWithPolicy(NewRoundRobin())
}

// NewSchedulerWithPolicy installs a custom scheduling policy, per the
// external "scheduling_algorithm(policy*)" install API in spec §6.
// Ownership of policy is not transferred; it must outlive the scheduler's
// active period.
func NewSchedulerWithPolicy(p Policy) *Scheduler {
	s := &Scheduler{
		policy: p,
		wake:   make(chan struct{}, 1),
	}
	s.metrics = newSchedulerMetrics()
	return s
}

// Spawn creates a new fiber running entry, places its FCB in the ready
// set, and returns a Handle. The caller continues immediately; entry runs
// the next time the scheduler picks it via Run/RunOnce.
func (s *Scheduler) Spawn(entry func(*This)) *Handle {
	return s.spawn(entry, 0)
}

// SpawnWithPriority is Spawn with an explicit initial priority.
func (s *Scheduler) SpawnWithPriority(entry func(*This), priority int) *Handle {
	return s.spawn(entry, priority)
}

func (s *Scheduler) spawn(entry func(*This), priority int) *Handle {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	f := newFCB(id, s, entry, priority)
	s.policy.Awakened(f.view)
	s.metrics.observeSpawn()
	s.mu.Unlock()

	go s.runFiberGoroutine(f)

	s.poke()
	return &Handle{fcb: f}
}

// runFiberGoroutine is the body of the goroutine backing one fiber. It
// blocks on the baton before doing anything, so Spawn's Awakened call
// above is safe to race against: the goroutine cannot observe f before
// the scheduler first hands it the baton.
func (s *Scheduler) runFiberGoroutine(f *fcb) {
	<-f.baton
	this := &This{fcb: f, sched: s}
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(yieldBreakSignal); !ok {
					f.panicVal = r
				}
			}
		}()
		f.entry(this)
	}()
	s.terminate(f)
	f.yielded <- struct{}{}
}

// terminate marks f as terminated and wakes any joiners (parked fibers go
// back to ready via the policy; the host-side channel is closed for
// goroutine-blocking joins). Caller must not hold s.mu.
func (s *Scheduler) terminate(f *fcb) {
	s.mu.Lock()
	f.mu.Lock()
	f.status = StatusTerminated
	f.mu.Unlock()
	joiners := f.joiners
	f.joiners = nil
	for _, j := range joiners {
		j.mu.Lock()
		stillWaiting := j.status == StatusWaiting
		if stillWaiting {
			j.status = StatusReady
		}
		j.mu.Unlock()
		if stillWaiting {
			s.policy.Awakened(j.view)
		}
	}
	s.metrics.observeTerminate()
	s.mu.Unlock()
	close(f.terminate)
}

// RunOnce advances the scheduler by at most one scheduling decision: it
// moves expired sleepers into the ready set, picks the next fiber, and
// switches to it. It returns false if there was nothing runnable and no
// sleeper to wait for, meaning control should return to the caller (spec
// §4.2.2's "the loop returns control to the calling fiber").
func (s *Scheduler) RunOnce() bool {
	s.mu.Lock()
	s.drainSleepers()
	nextView := s.policy.PickNext()
	if nextView == nil {
		if s.sleep.Len() == 0 {
			s.mu.Unlock()
			return false
		}
		deadline := s.sleep[0].deadline
		s.mu.Unlock()
		s.waitForWork(deadline)
		return true
	}
	next := nextView.f
	next.mu.Lock()
	next.status = StatusRunning
	next.mu.Unlock()
	s.mu.Unlock()

	s.metrics.observeSwitch()
	next.baton <- struct{}{}
	<-next.yielded
	return true
}

// Run drives the scheduler until its ready set and sleep queue are both
// empty, then returns control to the caller — the "main fiber" of spec
// §4.2.2, which may run more user code and call Run again (e.g. after
// spawning more fibers).
func (s *Scheduler) Run() {
	for s.RunOnce() {
	}
}

// RunContext drives the scheduler the way Run does, but also stops early
// if ctx is canceled or its deadline passes, leaving any fiber still in
// the ready set or sleep queue untouched for a later Run/RunOnce/
// RunContext call to pick back up. It reports ctx's error in that case,
// or nil if the scheduler simply ran dry. Cancellation is only observed
// between scheduling decisions, so a RunOnce call already blocked inside
// waitForWork for a distant sleeper's deadline is not interrupted early.
func (s *Scheduler) RunContext(ctx context.Context) error {
	for {
		if gfcontext.IsCanceled(ctx) {
			return ctx.Err()
		}
		if !s.RunOnce() {
			return nil
		}
	}
}

// drainSleepers moves every fcb whose deadline has passed from the sleep
// heap into the policy. Caller must hold s.mu.
func (s *Scheduler) drainSleepers() {
	now := time.Now()
	for s.sleep.Len() > 0 && !s.sleep[0].deadline.After(now) {
		item := heap.Pop(&s.sleep).(*sleepItem)
		f := item.f
		f.mu.Lock()
		alreadyHandled := f.status != StatusWaiting
		if !alreadyHandled {
			f.status = StatusReady
			f.woken = wakeTimeout
		}
		f.mu.Unlock()
		if !alreadyHandled {
			s.policy.Awakened(f.view)
		}
	}
	s.metrics.observeSleepers(s.sleep.Len())
}

// waitForWork blocks the host goroutine until deadline, or until poke is
// called from another goroutine (a producer setting a future's value, an
// Interrupt call, a new Spawn). Caller must not hold s.mu.
func (s *Scheduler) waitForWork(deadline time.Time) {
	d := time.Until(deadline)
	if d < 0 {
		d = 0
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-s.wake:
	}
}

// poke nudges a host goroutine blocked in waitForWork, if any.
func (s *Scheduler) poke() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// enrollSleep parks f in the sleep queue with the given deadline. Caller
// must hold s.mu; f.status must already be StatusWaiting.
func (s *Scheduler) enrollSleep(f *fcb, deadline time.Time) {
	heap.Push(&s.sleep, &sleepItem{f: f, deadline: deadline})
	s.metrics.observeSleepers(s.sleep.Len())
}

// removeSleep removes f from the sleep queue if present, returning true
// if it was found (used to cancel the losing side of a wait_for race
// between timeout and a normal wakeup). Caller must hold s.mu.
func (s *Scheduler) removeSleep(f *fcb) bool {
	for i, item := range s.sleep {
		if item.f == f {
			heap.Remove(&s.sleep, i)
			s.metrics.observeSleepers(s.sleep.Len())
			return true
		}
	}
	return false
}

// Close calls the metrics close hook, which has nothing to release: the
// scheduler's metrics registry is private to it and is simply dropped
// with it. Close does not terminate outstanding fibers; callers are
// expected to have joined or detached every Handle first.
func (s *Scheduler) Close() {
	s.metrics.close()
}

// wakeWithReason moves f from waiting to ready with the given wake
// disposition if, and only if, f is still waiting — it is a no-op if f
// already left the waiting state (e.g. a normal Wake and an interrupt
// raced; whichever lands first wins, the other observes nothing to do).
func (s *Scheduler) wakeWithReason(f *fcb, reason wakeReason) bool {
	s.mu.Lock()
	f.mu.Lock()
	if f.status != StatusWaiting {
		f.mu.Unlock()
		s.mu.Unlock()
		return false
	}
	f.status = StatusReady
	f.woken = reason
	f.mu.Unlock()
	s.removeSleep(f)
	s.policy.Awakened(f.view)
	s.mu.Unlock()
	s.poke()
	return true
}
