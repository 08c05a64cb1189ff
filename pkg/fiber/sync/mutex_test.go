package sync

import (
	"testing"

	"github.com/arvane/fiberflow/internal/testutil"
	"github.com/arvane/fiberflow/pkg/fiber"
)

func TestMutexExclusion(t *testing.T) {
	sched := fiber.NewScheduler()
	var m Mutex
	var counter int
	var order []int

	work := func(id int) func(*fiber.This) {
		return func(ft *fiber.This) {
			testutil.AssertNoError(t, m.Lock(ft))
			counter++
			order = append(order, id)
			ft.Yield()
			counter--
			testutil.AssertNoError(t, m.Unlock(ft))
		}
	}

	h1 := sched.Spawn(work(1))
	h2 := sched.Spawn(work(2))
	sched.Run()
	testutil.AssertNoError(t, h1.Join())
	testutil.AssertNoError(t, h2.Join())
	testutil.AssertEqual(t, counter, 0)
	testutil.AssertEqual(t, len(order), 2)
}

// TestMutexFIFOWaiters checks Unlock hands off to the first waiter in
// arrival order, not an arbitrary one. holder parks on a gate event
// (rather than Yield, which would re-enter the ready queue and disturb
// the dispatch order) so the three waiters are the only runnable fibers
// while they each reach Lock and park.
func TestMutexFIFOWaiters(t *testing.T) {
	sched := fiber.NewScheduler()
	var m Mutex
	var gate Event
	var order []int

	holder := sched.Spawn(func(ft *fiber.This) {
		testutil.AssertNoError(t, m.Lock(ft))
		testutil.AssertNoError(t, gate.Wait(ft))
		testutil.AssertNoError(t, m.Unlock(ft))
	})
	sched.RunOnce() // holder takes the lock and parks on the gate

	var waiters []*fiber.Handle
	for i := 1; i <= 3; i++ {
		id := i
		h := sched.Spawn(func(ft *fiber.This) {
			testutil.AssertNoError(t, m.Lock(ft))
			order = append(order, id)
			testutil.AssertNoError(t, m.Unlock(ft))
		})
		waiters = append(waiters, h)
		sched.RunOnce() // dispatch this waiter up to its Lock call
	}

	gate.Set()
	sched.Run()
	testutil.AssertNoError(t, holder.Join())
	for _, h := range waiters {
		testutil.AssertNoError(t, h.Join())
	}
	testutil.AssertEqual(t, len(order), 3)
	testutil.AssertEqual(t, order[0], 1)
	testutil.AssertEqual(t, order[1], 2)
	testutil.AssertEqual(t, order[2], 3)
}

func TestMutexUnlockNotOwnedFails(t *testing.T) {
	sched := fiber.NewScheduler()
	var m Mutex
	var err error
	h := sched.Spawn(func(t *fiber.This) {
		err = m.Unlock(t)
	})
	testutil.AssertNoError(t, h.Join())
	if err != fiber.ErrNotOwner {
		t.Fatalf("got %v, want ErrNotOwner", err)
	}
}

func TestMutexTryLock(t *testing.T) {
	sched := fiber.NewScheduler()
	var m Mutex
	var second bool
	h := sched.Spawn(func(ft *fiber.This) {
		testutil.AssertEqual(t, m.TryLock(ft), true)
		second = m.TryLock(ft)
		testutil.AssertNoError(t, m.Unlock(ft))
	})
	testutil.AssertNoError(t, h.Join())
	testutil.AssertEqual(t, second, false)
}

// TestMutexInterruptWhileParked is spec scenario S6: fiber A holds the
// mutex, fiber B blocks on it, B is interrupted, and its Lock call fails
// without ever acquiring the mutex.
func TestMutexInterruptWhileParked(t *testing.T) {
	sched := fiber.NewScheduler()
	var m Mutex
	var bErr error
	var bAcquired bool

	a := sched.Spawn(func(ft *fiber.This) {
		testutil.AssertNoError(t, m.Lock(ft))
		ft.Sleep(0) // yield-equivalent suspension so B can enqueue
		testutil.AssertNoError(t, m.Unlock(ft))
	})
	sched.RunOnce() // A takes the lock, parks in its own sleep

	b := sched.Spawn(func(t *fiber.This) {
		bErr = m.Lock(t)
		bAcquired = bErr == nil
	})
	sched.RunOnce() // B parks on the mutex

	testutil.AssertNoError(t, b.Interrupt())
	sched.Run()

	testutil.AssertNoError(t, a.Join())
	testutil.AssertNoError(t, b.Join())
	if bErr != fiber.ErrInterrupted {
		t.Fatalf("bErr = %v, want ErrInterrupted", bErr)
	}
	testutil.AssertEqual(t, bAcquired, false)
}

func TestLockerScopedUnlock(t *testing.T) {
	sched := fiber.NewScheduler()
	var m Mutex
	var unlocked bool
	h := sched.Spawn(func(ft *fiber.This) {
		l, err := NewLocker(ft, &m)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, m.TryLock(ft), false)
		testutil.AssertNoError(t, l.Unlock())
		unlocked = m.TryLock(ft)
	})
	testutil.AssertNoError(t, h.Join())
	testutil.AssertEqual(t, unlocked, true)
}
