package future

import "github.com/arvane/fiberflow/pkg/fiber"

// Async spawns a fiber on sched that runs fn and returns a Future bound
// to its result, mirroring boost::fibers::async's launch::post policy —
// fn is always run on a freshly spawned fiber, never deferred until the
// first Get (spec.md's core has no deferred launch policy; StatusDeferred
// exists in the Status enumeration for API completeness but nothing
// produces it).
func Async[T any](sched *fiber.Scheduler, fn func(*fiber.This) (T, error)) (Future[T], error) {
	task := NewPackagedTask[T](fn)
	fut, err := task.GetFuture()
	if err != nil {
		return Future[T]{}, err
	}
	sched.Spawn(func(t *fiber.This) {
		_ = task.Invoke(t)
	})
	return fut, nil
}
