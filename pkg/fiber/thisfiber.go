package fiber

import "time"

// This is the capability a running fiber's entry function receives: the
// handle to itself used at explicit suspension points, mirroring the
// this_fiber:: free functions of spec §6. Only code running on f's own
// goroutine may call This's methods.
type This struct {
	fcb   *fcb
	sched *Scheduler
}

// ID returns the calling fiber's identity.
func (t *This) ID() ID { return t.fcb.id }

// Scheduler returns the scheduler that owns this fiber.
func (t *This) Scheduler() *Scheduler { return t.sched }

// yieldBreakSignal is the panic value This.YieldBreak raises to unwind
// straight back to the goroutine wrapper without returning through the
// entry function's own call stack, matching spec §4.2.3's "equivalent, to
// the caller, to a clean exit from the user function."
type yieldBreakSignal struct{}

// Yield reschedules the calling fiber, placing it at the end of the ready
// set at its current priority, and resumes some other ready fiber (spec
// §4.2.3).
func (t *This) Yield() {
	f := t.fcb
	s := t.sched

	s.mu.Lock()
	f.mu.Lock()
	f.status = StatusReady
	f.mu.Unlock()
	s.policy.Awakened(f.view)
	s.mu.Unlock()

	f.yielded <- struct{}{}
	<-f.baton

	t.observeResumeInterrupt()
}

// YieldBreak terminates the calling fiber immediately, without returning
// control to its entry function's remaining code.
func (t *This) YieldBreak() {
	panic(yieldBreakSignal{})
}

// SleepUntil parks the calling fiber in the sleep queue until deadline,
// or until it is interrupted. It is an implicit interruption point.
func (t *This) SleepUntil(deadline time.Time) Disposition {
	w := t.NewWaiter()
	return t.Suspend(w, deadline)
}

// Sleep is SleepUntil relative to now.
func (t *This) Sleep(d time.Duration) Disposition {
	return t.SleepUntil(time.Now().Add(d))
}

// Spawn lets a running fiber spawn another fiber on the same scheduler.
func (t *This) Spawn(entry func(*This)) *Handle {
	return t.sched.Spawn(entry)
}

// Join blocks the calling fiber until h's fiber terminates. It fails with
// ErrResourceDeadlock if h names the calling fiber itself, or with
// ErrInvalidArgument if h is not joinable.
func (t *This) Join(h *Handle) error {
	f := h.fcb
	if f == nil {
		return ErrInvalidArgument
	}
	if f == t.fcb {
		return ErrResourceDeadlock
	}
	s := t.sched

	if t.fcb.consumeInterrupt() {
		return ErrInterrupted
	}

	s.mu.Lock()
	f.mu.Lock()
	if !f.joinable {
		f.mu.Unlock()
		s.mu.Unlock()
		return ErrInvalidArgument
	}
	terminated := f.status == StatusTerminated
	if !terminated {
		f.joiners = append(f.joiners, t.fcb)
	}
	f.mu.Unlock()
	s.mu.Unlock()

	if !terminated {
		w := t.NewWaiter()
		if disp := t.Suspend(w, time.Time{}); disp == Interrupted {
			return ErrInterrupted
		}
	}

	h.clear()
	return nil
}
