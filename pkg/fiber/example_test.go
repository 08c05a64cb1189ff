package fiber_test

import (
	"fmt"

	"github.com/arvane/fiberflow/pkg/fiber"
)

// Example demonstrates spawning a fiber and joining it.
func Example() {
	sched := fiber.NewScheduler()

	h := sched.Spawn(func(t *fiber.This) {
		fmt.Println("hello from a fiber")
	})
	if err := h.Join(); err != nil {
		fmt.Println("join failed:", err)
	}

	// Output: hello from a fiber
}

// Example_priority shows §4.2.1's highest-present-priority rule in
// practice: the priority-7 fiber runs to completion before the
// default-priority one is ever picked, since the policy always drains
// the highest populated level before touching a lower one.
func Example_priority() {
	sched := fiber.NewScheduler()

	low := sched.Spawn(func(t *fiber.This) {
		fmt.Println("low")
		t.Yield()
		fmt.Println("low")
	})
	high := sched.SpawnWithPriority(func(t *fiber.This) {
		fmt.Println("high")
		t.Yield()
		fmt.Println("high")
	}, 7)

	sched.Run()
	_ = low.Join()
	_ = high.Join()

	// Output:
	// high
	// high
	// low
	// low
}
