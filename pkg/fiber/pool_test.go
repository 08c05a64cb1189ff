package fiber

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/arvane/fiberflow/internal/testutil"
)

func TestSchedulerPoolRoundRobinsAndCompletes(t *testing.T) {
	pool, err := NewSchedulerPool(3)
	testutil.AssertNoError(t, err)
	defer pool.Close()

	const n = 30
	var completed atomic.Int32
	for i := 0; i < n; i++ {
		err := pool.Submit(func(t *This) {
			completed.Add(1)
		})
		testutil.AssertNoError(t, err)
	}

	testutil.Eventually(t, func() bool {
		return completed.Load() == n
	}, testutil.TestTimeout, 5*time.Millisecond)
}

func TestSchedulerPoolRejectsAfterClose(t *testing.T) {
	pool, err := NewSchedulerPool(2)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, pool.Close())

	if err := pool.Submit(func(t *This) {}); err != ErrSchedulerClosed {
		t.Fatalf("got %v, want ErrSchedulerClosed", err)
	}
}

func TestSchedulerPoolDoubleCloseFails(t *testing.T) {
	pool, err := NewSchedulerPool(1)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, pool.Close())
	testutil.AssertError(t, pool.Close())
}

func TestNewSchedulerPoolRejectsNonPositiveSize(t *testing.T) {
	_, err := NewSchedulerPool(0)
	testutil.AssertError(t, err)
}

func TestSchedulerPoolSizeAndRegistries(t *testing.T) {
	pool, err := NewSchedulerPoolWithConfig(PoolConfig{Size: 4, IntakeSize: 8})
	testutil.AssertNoError(t, err)
	defer pool.Close()
	testutil.AssertEqual(t, pool.Size(), 4)
	testutil.AssertEqual(t, len(pool.Registries()), 4)
}
