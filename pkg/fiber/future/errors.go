package future

import "errors"

// Sentinel errors for the shared-state / handle protocol (spec §6, §7).
// fiber.ErrInterrupted is reused directly from pkg/fiber for the
// overlapping failure mode (a waiting fiber gets interrupted) rather than
// duplicated here; an operation on an empty handle reports ErrNoState.
var (
	// ErrNoState is returned when an operation is attempted on a handle
	// that has no shared state attached — a moved-from Promise, or a
	// Future/SharedFuture that was default-constructed or already
	// detached its state via Get.
	ErrNoState = errors.New("future: no shared state")

	// ErrFutureAlreadyRetrieved is returned by GetFuture when the
	// promise's or packaged task's future has already been extracted.
	ErrFutureAlreadyRetrieved = errors.New("future: future already retrieved")

	// ErrPromiseAlreadySatisfied is returned by SetValue/SetException
	// when the shared state is already ready (spec invariant I1, P1).
	ErrPromiseAlreadySatisfied = errors.New("future: promise already satisfied")

	// ErrBrokenPromise is the exception value delivered to consumers
	// when every producer-side reference to a shared state is dropped
	// without it ever becoming ready (spec I2, P3).
	ErrBrokenPromise = errors.New("future: broken promise")

	// ErrFutureUninitialized completes the error enumeration. No function
	// in this package returns it: Future and SharedFuture report a
	// zero-value or already-consumed handle as ErrNoState.
	ErrFutureUninitialized = errors.New("future: uninitialized future")
)
