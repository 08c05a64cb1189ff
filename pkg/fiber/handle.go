package fiber

// Handle is a non-copyable, movable owning handle over an FCB, returned
// by Scheduler.Spawn. Per spec §4.3, a joinable Handle that is dropped
// without being joined or detached is a programmer error; unlike C++,
// Go cannot enforce this at the type level, so it is surfaced instead as
// a documented contract — callers must call Join or Detach exactly once
// on every Handle they receive.
type Handle struct {
	fcb *fcb
}

// Joinable reports whether this handle still owns an unjoined, undetached
// FCB.
func (h *Handle) Joinable() bool {
	if h.fcb == nil {
		return false
	}
	h.fcb.mu.Lock()
	defer h.fcb.mu.Unlock()
	return h.fcb.joinable
}

// Empty reports whether the handle owns no FCB — the negation of
// Joinable, named separately because spec §4.3 lists both as the same
// predicate under different names for readability at call sites.
func (h *Handle) Empty() bool { return !h.Joinable() }

// Running reports whether the owned fiber is still joinable and has not
// yet terminated — the bool-conversion semantics of spec §4.3.
func (h *Handle) Running() bool {
	if h.fcb == nil {
		return false
	}
	h.fcb.mu.Lock()
	defer h.fcb.mu.Unlock()
	return h.fcb.joinable && h.fcb.status != StatusTerminated
}

// ID returns the owned fiber's identity, or NoID if the handle is empty.
func (h *Handle) ID() ID {
	if h.fcb == nil {
		return NoID
	}
	return h.fcb.id
}

// Priority returns the owned fiber's current priority.
func (h *Handle) Priority() int {
	if h.fcb == nil {
		return 0
	}
	h.fcb.mu.Lock()
	defer h.fcb.mu.Unlock()
	return h.fcb.priority
}

// SetPriority changes the owned fiber's priority, informing the
// scheduler's policy (spec §4.2.1's Priority hook).
func (h *Handle) SetPriority(p int) {
	if h.fcb == nil {
		return
	}
	f := h.fcb
	s := f.sched
	s.mu.Lock()
	s.policy.Priority(f.view, p)
	f.view.setPriority(p)
	s.mu.Unlock()
}

// Detach clears ownership; the fiber runs to completion untracked. After
// Detach, Joinable returns false.
func (h *Handle) Detach() error {
	if h.fcb == nil || !h.Joinable() {
		return ErrInvalidArgument
	}
	h.fcb.mu.Lock()
	h.fcb.joinable = false
	h.fcb.mu.Unlock()
	h.fcb = nil
	return nil
}

// Interrupt requests interruption of the owned fiber (spec §4.7). It is
// an alias for Cancel.
func (h *Handle) Interrupt() error {
	if h.fcb == nil {
		return ErrInvalidArgument
	}
	h.fcb.sched.interrupt(h.fcb)
	return nil
}

// Cancel is an alias for Interrupt (spec §4.3).
func (h *Handle) Cancel() error { return h.Interrupt() }

// Join blocks the calling host (non-fiber) goroutine until the owned
// fiber terminates, driving its scheduler's run loop as needed, then
// clears ownership. Fails with ErrInvalidArgument if the handle is not
// joinable. Call This.Join instead from inside a fiber, so that the
// caller's own suspension is visible to its scheduler.
func (h *Handle) Join() error {
	if h.fcb == nil || !h.Joinable() {
		return ErrInvalidArgument
	}
	f := h.fcb
	s := f.sched

	for {
		f.mu.Lock()
		done := f.status == StatusTerminated
		f.mu.Unlock()
		if done {
			break
		}
		if !s.RunOnce() {
			<-f.terminate
			break
		}
	}
	h.clear()
	return nil
}

func (h *Handle) clear() {
	if h.fcb != nil {
		h.fcb.mu.Lock()
		h.fcb.joinable = false
		h.fcb.mu.Unlock()
	}
	h.fcb = nil
}
