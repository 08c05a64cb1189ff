package fiber

import (
	"sync"
	"time"
)

// ID identifies a fiber. The zero value, NoID, names "not a fiber" and is
// the value returned by Handle.ID for an empty handle. IDs are totally
// ordered and comparable so they can key maps and sets.
type ID uint64

// NoID is the distinguished identity used for default-constructed handles.
const NoID ID = 0

// Status is a fiber's position in the lifecycle state machine described in
// spec §4.3: ready -> running -> {waiting, terminated}; waiting -> ready;
// terminated is absorbing.
type Status int

const (
	// StatusReady means the FCB is enrolled in the scheduler's ready set
	// and eligible for PickNext.
	StatusReady Status = iota
	// StatusRunning means the FCB currently holds the scheduler's baton.
	StatusRunning
	// StatusWaiting means the FCB is parked in a waiter set or the sleep
	// queue.
	StatusWaiting
	// StatusTerminated means the fiber's entry function has returned, or
	// terminated via YieldBreak or an uncaught panic. Terminal.
	StatusTerminated
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusRunning:
		return "running"
	case StatusWaiting:
		return "waiting"
	case StatusTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// InterruptState is the interruption disposition of an FCB, per spec §4.7.
type InterruptState int

const (
	// InterruptEnabled is the default: interruption_point and blocking
	// calls observe a pending request.
	InterruptEnabled InterruptState = iota
	// InterruptDisabled suppresses interruption checks; a request raised
	// while disabled stays pending and fires at the next point where
	// interruption is re-enabled.
	InterruptDisabled
)

// fcb is the fiber control block: the scheduler's private bookkeeping for
// one fiber. Users never see *fcb directly; they hold a Handle.
type fcb struct {
	id       ID
	priority int

	mu             sync.Mutex
	status         Status
	joinable       bool
	interruptState InterruptState
	pending        bool
	deadline       time.Time
	hasDeadline    bool

	joiners []*fcb // fibers parked in This.Join, woken when this fcb terminates

	result    interface{} // the user function's return value, if any
	panicVal  interface{} // non-nil if the fiber terminated via panic
	terminate chan struct{}

	baton    chan struct{} // scheduler -> fiber: "you may run"
	yielded  chan struct{} // fiber -> scheduler: "I suspended or finished"
	sched    *Scheduler
	entry    func(*This)
	woken    wakeReason // disposition delivered on the most recent wakeup

	view *FCB // the one exported handle other packages' Policy implementations see
}

// FCB is the view of a fiber control block a Policy implementation is
// given (spec §4.2.1). It is deliberately narrow — identity and priority
// only — because that is all a scheduling decision needs to know about a
// fiber; everything else about the fcb (its channels, its result, its
// interruption state) is the scheduler's own business. The scheduler is
// the only thing that ever constructs one; external code can implement
// Policy against this type without ever seeing the unexported fcb it
// wraps.
type FCB struct {
	f *fcb
}

// ID returns the fiber's identity.
func (h *FCB) ID() ID { return h.f.id }

// Priority returns the fiber's priority at the time of the call. Policy
// methods are only ever invoked while the scheduler holds its own lock,
// so this is safe to read without any locking of its own — the same
// assumption RoundRobin already relies on internally.
func (h *FCB) Priority() int { return h.f.priority }

// setPriority is unexported: only the scheduler's own Priority() plumbing
// may change a fiber's priority, never a Policy implementation reading
// one back.
func (h *FCB) setPriority(p int) { h.f.priority = p }

// wakeReason records why a parked fcb was returned to the ready set, so
// the primitive that parked it (mutex, cond, future wait, sleep) can tell
// a normal wakeup from a timeout or an interruption.
type wakeReason int

const (
	wakeNormal wakeReason = iota
	wakeTimeout
	wakeInterrupted
)

func newFCB(id ID, sched *Scheduler, entry func(*This), priority int) *fcb {
	f := &fcb{
		id:        id,
		sched:     sched,
		entry:     entry,
		priority:  priority,
		status:    StatusReady,
		joinable:  true,
		terminate: make(chan struct{}),
		baton:     make(chan struct{}),
		yielded:   make(chan struct{}),
	}
	f.view = &FCB{f: f}
	return f
}

// setInterruptPending marks a pending interruption request. If the FCB is
// currently parked, it must be woken by the caller (scheduler.interrupt
// does this under the scheduler's lock, which also owns fcb.status).
func (f *fcb) setInterruptPending() {
	f.mu.Lock()
	f.pending = true
	f.mu.Unlock()
}

// consumeInterrupt clears and reports a pending, enabled interruption
// request. Called at interruption points and blocking-call entry/wakeup.
func (f *fcb) consumeInterrupt() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.interruptState == InterruptEnabled && f.pending {
		f.pending = false
		return true
	}
	return false
}

func (f *fcb) hasPendingInterrupt() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}
