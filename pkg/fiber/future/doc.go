// Package future implements the one-shot result handoff C5/C6 describe:
// Promise, Future, SharedFuture, PackagedTask, and Async, built on top of
// a generic shared state (state.go) that reuses pkg/fiber/sync's
// FIFO-waiter-with-stale-skip pattern for fiber consumers, plus a plain
// closed-once channel for host (non-fiber) consumers.
//
// # Void and reference results
//
// boost::fibers::future<void> and future<T&> are explicit template
// specializations in the original. Go generics don't need a parallel
// mechanism for either case:
//
//   - A void result is Future[struct{}]; Promise[struct{}]'s SetValue
//     takes struct{}{}, matching the original's promise<void>::set_value()
//     taking no argument in spirit.
//   - A reference result is Future[*U]: the shared state stores a pointer,
//     so Get returns the same pointer every caller would have bound a
//     reference to in the original.
//
// # Thread/scheduler affinity
//
// A shared state does not belong to any particular Scheduler. Its
// producer side (SetValue/SetException) may be called from any goroutine,
// fiber or host, including one driven by a completely different
// Scheduler — the mutex inside sharedState is the only synchronization
// that matters. Only the consumer side's fiber-parking path (Future.Get,
// SharedFuture.Get, Wait*) needs to run on the fiber whose scheduler will
// resume it.
package future
