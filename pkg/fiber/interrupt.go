package fiber

// interrupt sets a pending interruption request on f and, if f is parked
// in a waiter set or the sleep queue, moves it back to ready with an
// "interrupted" disposition (spec §4.7). The waiter set f was parked in
// (a mutex, a condition variable, a future's waiter set) discovers this
// lazily: it will find f no longer in StatusWaiting the next time it
// scans, and must drop it rather than granting it the resource.
func (s *Scheduler) interrupt(f *fcb) {
	f.setInterruptPending()
	s.wakeWithReason(f, wakeInterrupted)
}

// InterruptionPoint fails with ErrInterrupted, clearing the pending
// request, iff interruption is enabled and a request is pending;
// otherwise it returns nil (spec §4.7).
func (t *This) InterruptionPoint() error {
	if t.fcb.consumeInterrupt() {
		return ErrInterrupted
	}
	return nil
}

// observeResumeInterrupt is called by Yield each time it resumes. It does
// nothing: Yield has no error return and no Disposition, so it neither
// reports nor clears a pending interruption request. Callers that need
// to observe interruption use InterruptionPoint or Suspend, whose
// Disposition reports Interrupted.
func (t *This) observeResumeInterrupt() {
	// Yield does not raise; a fiber that wants to observe interruption
	// after a Yield should call InterruptionPoint explicitly. This hook
	// exists so future extensions (e.g. auto-raising policies) have a
	// single call site to change.
}

// InterruptGuard is returned by DisableInterruption; calling Restore
// brings back the fiber's prior interruption state.
type InterruptGuard struct {
	t    *This
	prev InterruptState
}

// DisableInterruption scopes out interruption checks: InterruptionPoint
// becomes a no-op and Suspend will not resolve to Interrupted while in
// scope. A request delivered during the scope stays pending and fires at
// the first interruption point after Restore (spec §4.7, P7).
func (t *This) DisableInterruption() *InterruptGuard {
	f := t.fcb
	f.mu.Lock()
	prev := f.interruptState
	f.interruptState = InterruptDisabled
	f.mu.Unlock()
	return &InterruptGuard{t: t, prev: prev}
}

// Restore restores the interruption state that was in effect before the
// corresponding DisableInterruption call.
func (g *InterruptGuard) Restore() {
	f := g.t.fcb
	f.mu.Lock()
	f.interruptState = g.prev
	f.mu.Unlock()
}
