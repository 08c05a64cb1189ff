package fiber

// Policy is the scheduling-policy contract from spec §4.2.1, and the
// external "scheduling_algorithm(policy*)" install point from spec §6. It
// is deliberately narrow so alternative policies (work-stealing, lottery,
// deadline-aware) can be dropped in without the scheduler core changing —
// NewSchedulerWithPolicy accepts any implementation, inside this module or
// out of it. Implementers should not assume the ready set is a simple
// queue.
type Policy interface {
	// Awakened is called whenever an FCB becomes ready: newly spawned,
	// unblocked from a wait, woken by the sleep queue, or rescheduled by
	// Yield. The policy must record it in its ready set.
	Awakened(f *FCB)

	// PickNext returns the next FCB to run and removes it from the ready
	// set, or returns nil if the ready set is empty.
	PickNext() *FCB

	// Priority informs the policy that an FCB's priority changed.
	Priority(f *FCB, p int)
}
