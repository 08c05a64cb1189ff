package sync

import (
	"testing"

	"github.com/arvane/fiberflow/internal/testutil"
	"github.com/arvane/fiberflow/pkg/fiber"
)

func TestNewSemaphoreRejectsNonPositiveCapacity(t *testing.T) {
	_, err := NewSemaphore(0)
	testutil.AssertError(t, err)
	_, err = NewSemaphore(-1)
	testutil.AssertError(t, err)
}

func TestSemaphoreTryAcquireRelease(t *testing.T) {
	sem, err := NewSemaphore(2)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sem.TryAcquire(2), true)
	testutil.AssertEqual(t, sem.TryAcquire(1), false)
	sem.Release(1)
	testutil.AssertEqual(t, sem.Available(), 1)
}

func TestSemaphoreAcquireBlocksUntilCapacity(t *testing.T) {
	sched := fiber.NewScheduler()
	sem, err := NewSemaphore(1)
	testutil.AssertNoError(t, err)
	var gate Event

	holder := sched.Spawn(func(ft *fiber.This) {
		testutil.AssertNoError(t, sem.Acquire(ft, 1))
		testutil.AssertNoError(t, gate.Wait(ft))
		sem.Release(1)
	})
	sched.RunOnce() // holder takes the permit and parks on the gate

	var acquired bool
	waiter := sched.Spawn(func(ft *fiber.This) {
		testutil.AssertNoError(t, sem.Acquire(ft, 1))
		acquired = true
	})
	sched.RunOnce() // waiter parks

	testutil.AssertEqual(t, acquired, false)
	gate.Set()
	sched.Run()
	testutil.AssertNoError(t, holder.Join())
	testutil.AssertNoError(t, waiter.Join())
	testutil.AssertEqual(t, acquired, true)
}

func TestSemaphoreAcquireInterrupted(t *testing.T) {
	sched := fiber.NewScheduler()
	sem, err := NewSemaphore(1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sem.TryAcquire(1), true)

	var acqErr error
	h := sched.Spawn(func(t *fiber.This) {
		acqErr = sem.Acquire(t, 1)
	})
	sched.RunOnce()
	testutil.AssertNoError(t, h.Interrupt())
	sched.Run()
	testutil.AssertNoError(t, h.Join())
	if acqErr != fiber.ErrInterrupted {
		t.Fatalf("got %v, want ErrInterrupted", acqErr)
	}
	testutil.AssertEqual(t, sem.Available(), 0)
}

func TestSemaphoreZeroOrNegativeNIsNoop(t *testing.T) {
	sched := fiber.NewScheduler()
	sem, err := NewSemaphore(1)
	testutil.AssertNoError(t, err)
	h := sched.Spawn(func(ft *fiber.This) {
		testutil.AssertNoError(t, sem.Acquire(ft, 0))
		testutil.AssertNoError(t, sem.Acquire(ft, -3))
	})
	testutil.AssertNoError(t, h.Join())
	testutil.AssertEqual(t, sem.Available(), 1)
}
