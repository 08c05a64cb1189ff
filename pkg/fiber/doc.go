/*
Package fiber implements a cooperative, user-space fiber scheduler: fibers
are stackful units of work multiplexed onto a single OS thread, switched at
explicit suspension points rather than preempted.

Go has no public primitive for manual stack allocation and context
switching, so the scheduler realizes the "symmetric switch" contract with
one goroutine per fiber and an unbuffered baton channel per fiber: the
scheduler hands the baton to exactly one fiber goroutine and blocks until
that fiber yields, sleeps, blocks on a primitive, or terminates and hands
the baton back. At most one fiber's goroutine is ever doing work at a time
for a given Scheduler, which preserves the cooperative, non-preemptive
semantics the rest of this package depends on.

Basic usage:

	sched := fiber.NewScheduler()
	defer sched.Close()

	sched.Spawn(func(f *fiber.This) {
		fmt.Println("hello from a fiber")
		f.Yield()
		fmt.Println("resumed")
	})

	sched.Run()

Synchronization primitives fiber-aware to this scheduler live in
pkg/fiber/sync; one-shot result handoff (futures, promises, packaged
tasks) lives in pkg/fiber/future.
*/
package fiber
