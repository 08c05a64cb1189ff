/*
Package fiberflow provides a cooperative fiber scheduler and a
future/promise result handoff on top of it, in the shape of
boost.fiber's core: many lightweight, explicitly-yielding fibers
multiplexed onto a small number of OS threads, synchronized with
fiber-aware primitives rather than OS-level blocking.

Scheduling (pkg/fiber):
  - NewScheduler / Spawn / Run / RunOnce / RunContext: the run loop
  - RoundRobin: the default priority scheduling policy, pluggable via
    NewSchedulerWithPolicy
  - SpawnCron: periodic fiber respawn on a cron schedule
  - SchedulerPool: many Schedulers driven across a fixed set of
    goroutines
  - This.Yield / This.Sleep / This.Join / Handle.Interrupt: the
    cooperative suspension and interruption surface

Synchronization (pkg/fiber/sync):
  - Mutex, Cond, Event, Semaphore: fiber-parking equivalents of the
    usual OS-thread primitives

Futures (pkg/fiber/future):
  - Promise, Future, SharedFuture, PackagedTask, Async: one-shot result
    handoff between fibers, or between a fiber and a host goroutine
  - RemotePromise: the same handoff across OS processes, via Redis

Example usage:

	sched := fiber.NewScheduler()
	sched.Spawn(func(t *fiber.This) {
		t.Sleep(10 * time.Millisecond)
		fmt.Println("done")
	})
	sched.Run()
*/
package fiberflow
