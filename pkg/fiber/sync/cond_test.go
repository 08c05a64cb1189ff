package sync

import (
	"testing"
	"time"

	"github.com/arvane/fiberflow/internal/testutil"
	"github.com/arvane/fiberflow/pkg/fiber"
)

func TestCondWaitNotifyOne(t *testing.T) {
	sched := fiber.NewScheduler()
	var m Mutex
	c := NewCond()
	ready := false
	var observed bool

	waiter := sched.Spawn(func(ft *fiber.This) {
		testutil.AssertNoError(t, m.Lock(ft))
		for !ready {
			testutil.AssertNoError(t, c.Wait(ft, &m))
		}
		observed = ready
		testutil.AssertNoError(t, m.Unlock(ft))
	})
	sched.RunOnce() // waiter parks on c

	setter := sched.Spawn(func(ft *fiber.This) {
		testutil.AssertNoError(t, m.Lock(ft))
		ready = true
		c.NotifyOne()
		testutil.AssertNoError(t, m.Unlock(ft))
	})

	sched.Run()
	testutil.AssertNoError(t, waiter.Join())
	testutil.AssertNoError(t, setter.Join())
	testutil.AssertEqual(t, observed, true)
}

func TestCondNotifyAllWakesEveryWaiter(t *testing.T) {
	sched := fiber.NewScheduler()
	var m Mutex
	c := NewCond()
	ready := false
	var woke [3]bool

	var handles []*fiber.Handle
	for i := 0; i < 3; i++ {
		idx := i
		h := sched.Spawn(func(ft *fiber.This) {
			testutil.AssertNoError(t, m.Lock(ft))
			for !ready {
				testutil.AssertNoError(t, c.Wait(ft, &m))
			}
			woke[idx] = true
			testutil.AssertNoError(t, m.Unlock(ft))
		})
		handles = append(handles, h)
		sched.RunOnce()
	}

	setter := sched.Spawn(func(ft *fiber.This) {
		testutil.AssertNoError(t, m.Lock(ft))
		ready = true
		c.NotifyAll()
		testutil.AssertNoError(t, m.Unlock(ft))
	})
	handles = append(handles, setter)

	sched.Run()
	for _, h := range handles {
		testutil.AssertNoError(t, h.Join())
	}
	for i, w := range woke {
		if !w {
			t.Fatalf("waiter %d was not woken", i)
		}
	}
}

func TestCondWaitForTimesOut(t *testing.T) {
	sched := fiber.NewScheduler()
	var m Mutex
	c := NewCond()
	var disp fiber.Disposition
	var err error

	h := sched.Spawn(func(ft *fiber.This) {
		testutil.AssertNoError(t, m.Lock(ft))
		disp, err = c.WaitFor(ft, &m, 10*time.Millisecond)
		testutil.AssertNoError(t, m.Unlock(ft))
	})
	sched.Run()
	testutil.AssertNoError(t, h.Join())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, disp, fiber.TimedOut)
}

func TestCondWaitInterrupted(t *testing.T) {
	sched := fiber.NewScheduler()
	var m Mutex
	c := NewCond()
	var err error

	h := sched.Spawn(func(ft *fiber.This) {
		testutil.AssertNoError(t, m.Lock(ft))
		err = c.Wait(ft, &m)
	})
	sched.RunOnce() // parked in Wait, mutex released

	testutil.AssertNoError(t, h.Interrupt())
	sched.Run()
	testutil.AssertNoError(t, h.Join())
	if err != fiber.ErrInterrupted {
		t.Fatalf("got %v, want ErrInterrupted", err)
	}
}
