package future

import (
	"fmt"
	stdsync "sync"

	"github.com/arvane/fiberflow/pkg/fiber"
)

// PackagedTask wraps a fiber-callable function together with a Promise
// that captures its result, the way boost::fibers::packaged_task wraps a
// callable together with a promise. It is move-only in the original;
// fiberflow keeps the same discipline by offering no Reset — a
// PackagedTask is invoked at most once.
type PackagedTask[T any] struct {
	mu      stdsync.Mutex
	fn      func(*fiber.This) (T, error)
	promise *Promise[T]
	invoked bool
}

// NewPackagedTask wraps fn in a new packaged task.
func NewPackagedTask[T any](fn func(*fiber.This) (T, error)) *PackagedTask[T] {
	return &PackagedTask[T]{fn: fn, promise: NewPromise[T]()}
}

// GetFuture returns the future bound to this task's result.
func (p *PackagedTask[T]) GetFuture() (Future[T], error) {
	return p.promise.GetFuture()
}

// Invoke runs the wrapped function and settles the task's promise with
// its result, or with the error it returns, or with a recovered panic
// turned into an error. Invoking a task a second time reports
// ErrPromiseAlreadySatisfied without running fn again.
func (p *PackagedTask[T]) Invoke(t *fiber.This) error {
	p.mu.Lock()
	if p.invoked {
		p.mu.Unlock()
		return ErrPromiseAlreadySatisfied
	}
	p.invoked = true
	p.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			_ = p.promise.SetException(fmt.Errorf("packaged task panicked: %v", r))
		}
	}()

	v, err := p.fn(t)
	if err != nil {
		return p.promise.SetException(err)
	}
	return p.promise.SetValue(v)
}

// Close releases the task's promise without invoking it, delivering
// ErrBrokenPromise to any retrieved future if Invoke was never called.
func (p *PackagedTask[T]) Close() error {
	return p.promise.Close()
}
