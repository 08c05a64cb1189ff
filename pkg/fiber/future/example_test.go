package future_test

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arvane/fiberflow/pkg/fiber/future"
)

// Example_remotePromise demonstrates settling a promise from one process
// and awaiting it from another, both addressing the same Redis key. It
// follows the teacher's pkg/ratelimit/distributed convention of skipping
// cleanly when no Redis instance is reachable, rather than failing.
func Example_remotePromise() {
	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})
	defer func() { _ = rdb.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Println("Redis not available, skipping example")
		return
	}

	key := "fiberflow:example:remote-promise"
	rdb.Del(context.Background(), key)

	producer := future.NewRemotePromise(rdb, key, time.Minute)
	consumer := future.NewRemotePromise(rdb, key, time.Minute)

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = producer.SetValue(context.Background(), 42)
	}()

	var result int
	awaitCtx, awaitCancel := context.WithTimeout(context.Background(), time.Second)
	defer awaitCancel()
	if err := consumer.Await(awaitCtx, &result); err != nil {
		fmt.Println("await failed:", err)
		return
	}
	fmt.Println(result)

	// Output varies: printed only when a local Redis is reachable.
}
