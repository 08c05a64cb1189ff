package fiber

import "errors"

// Sentinel errors surfaced by fiber operations. Usage errors (operating on
// an empty or already-consumed handle, joining self) and protocol
// violations are never swallowed — every failure mode named by the
// scheduler and the synchronization primitives resolves to one of these.
var (
	// ErrInvalidArgument is returned when an operation is invoked with a
	// handle or argument that cannot satisfy the request, such as joining
	// or detaching a handle that is not joinable.
	ErrInvalidArgument = errors.New("fiber: invalid argument")

	// ErrResourceDeadlock is returned by Join when a fiber attempts to
	// join itself.
	ErrResourceDeadlock = errors.New("fiber: resource deadlock would occur")

	// ErrInterrupted is raised at the next interruption point (or at
	// resumption from a blocking call) when the fiber's FCB has a pending
	// interruption request and interruption is enabled.
	ErrInterrupted = errors.New("fiber: interrupted")

	// ErrNotOwner is returned by Mutex.Unlock when the caller does not
	// hold the mutex.
	ErrNotOwner = errors.New("fiber: unlock of unowned mutex")

	// ErrSchedulerClosed is returned by SchedulerPool.Submit once the
	// pool has been closed.
	ErrSchedulerClosed = errors.New("fiber: scheduler is closed")
)
