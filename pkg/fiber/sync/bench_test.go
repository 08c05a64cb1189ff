package sync

import (
	"testing"

	"github.com/arvane/fiberflow/pkg/fiber"
)

// BenchmarkMutexLockUnlockUncontended measures the cost of a single
// fiber's Lock/Unlock pair when no other fiber ever contends for it —
// the fast path that never suspends.
func BenchmarkMutexLockUnlockUncontended(b *testing.B) {
	sched := fiber.NewScheduler()
	var m Mutex
	var failed error

	sched.Spawn(func(t *fiber.This) {
		for i := 0; i < b.N; i++ {
			if err := m.Lock(t); err != nil {
				failed = err
				return
			}
			if err := m.Unlock(t); err != nil {
				failed = err
				return
			}
		}
	})
	b.ResetTimer()
	sched.Run()
	if failed != nil {
		b.Fatal(failed)
	}
}

// BenchmarkMutexHandoff measures Lock/Unlock when a second fiber is
// always parked waiting on the lock, so every Unlock pays for a real
// Suspend/Wake handoff rather than the uncontended fast path.
func BenchmarkMutexHandoff(b *testing.B) {
	sched := fiber.NewScheduler()
	var m Mutex
	var failed error

	sched.Spawn(func(t *fiber.This) {
		for i := 0; i < b.N; i++ {
			if err := m.Lock(t); err != nil {
				failed = err
				return
			}
			// Yield while holding the lock so the waiter below gets a
			// chance to park on it before this fiber releases it.
			t.Yield()
			if err := m.Unlock(t); err != nil {
				failed = err
				return
			}
		}
	})
	sched.Spawn(func(t *fiber.This) {
		for i := 0; i < b.N; i++ {
			if err := m.Lock(t); err != nil {
				failed = err
				return
			}
			if err := m.Unlock(t); err != nil {
				failed = err
				return
			}
		}
	})
	b.ResetTimer()
	sched.Run()
	if failed != nil {
		b.Fatal(failed)
	}
}
