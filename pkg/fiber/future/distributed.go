package future

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RemotePromise is the producer side of a shared state whose consumer may
// be parked on a different scheduler, in a different OS process. It
// extends spec §9's thread-affinity note ("the producer side already
// tolerates being driven from another scheduler") one step further, to
// another process entirely, the way the teacher's
// pkg/ratelimit/distributed package extends a local token bucket across
// instances with a Redis-backed Lua script for the one operation that
// must be atomic — here, "settle this key at most once" takes the place
// of "consume these tokens at most once."
type RemotePromise struct {
	client *redis.Client
	key    string
	ttl    time.Duration

	settleScript *redis.Script
}

// remoteEnvelope is the JSON payload stored under the promise's key and
// published to its channel.
type remoteEnvelope struct {
	Value json.RawMessage `json:"value,omitempty"`
	Err   string          `json:"err,omitempty"`
}

// NewRemotePromise creates a remote promise backed by client, identified
// by key. ttl bounds how long an unclaimed result is retained in Redis.
func NewRemotePromise(client *redis.Client, key string, ttl time.Duration) *RemotePromise {
	return &RemotePromise{
		client:       client,
		key:          key,
		ttl:          ttl,
		settleScript: redis.NewScript(luaSettleOnce),
	}
}

// SetValue publishes v as the result, encoded as JSON. Returns
// ErrPromiseAlreadySatisfied if the key was already settled by a
// previous call from any process — enforced atomically by a Lua script,
// the same mechanism the teacher's token bucket uses for its
// check-and-update step (redis_token_bucket.go's luaTryConsume).
func (p *RemotePromise) SetValue(ctx context.Context, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("future: marshal remote value: %w", err)
	}
	envelope, err := json.Marshal(remoteEnvelope{Value: payload})
	if err != nil {
		return fmt.Errorf("future: marshal remote envelope: %w", err)
	}
	return p.settle(ctx, envelope)
}

// SetException publishes err as the result's exception value.
func (p *RemotePromise) SetException(ctx context.Context, err error) error {
	envelope, merr := json.Marshal(remoteEnvelope{Err: err.Error()})
	if merr != nil {
		return fmt.Errorf("future: marshal remote envelope: %w", merr)
	}
	return p.settle(ctx, envelope)
}

func (p *RemotePromise) settle(ctx context.Context, envelope []byte) error {
	res, err := p.settleScript.Run(ctx, p.client, []string{p.key}, string(envelope), int(p.ttl.Seconds())).Result()
	if err != nil {
		return fmt.Errorf("future: redis settle: %w", err)
	}
	settled, _ := res.(int64)
	if settled == 0 {
		return ErrPromiseAlreadySatisfied
	}
	return nil
}

// Await blocks until the key is settled, by subscribing to its
// companion pub/sub channel and then checking the key once with GET in
// case the publish happened before Subscribe took effect. It returns the decoded
// value into dst, or the remote exception as an error.
func (p *RemotePromise) Await(ctx context.Context, dst interface{}) error {
	sub := p.client.Subscribe(ctx, p.channel())
	defer sub.Close()

	if envelope, err := p.client.Get(ctx, p.key).Bytes(); err == nil {
		return p.decode(envelope, dst)
	} else if err != redis.Nil {
		return fmt.Errorf("future: redis get: %w", err)
	}

	select {
	case msg := <-sub.Channel():
		return p.decode([]byte(msg.Payload), dst)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *RemotePromise) decode(envelope []byte, dst interface{}) error {
	var e remoteEnvelope
	if err := json.Unmarshal(envelope, &e); err != nil {
		return fmt.Errorf("future: unmarshal remote envelope: %w", err)
	}
	if e.Err != "" {
		return fmt.Errorf("future: remote exception: %s", e.Err)
	}
	if dst != nil && len(e.Value) > 0 {
		return json.Unmarshal(e.Value, dst)
	}
	return nil
}

func (p *RemotePromise) channel() string { return p.key + ":notify" }

// luaSettleOnce sets key to the given envelope only if it does not
// already exist, then publishes the envelope on key's notify channel
// regardless, so a consumer already subscribed but not yet polling GET
// still observes the result. Returns 1 if this call performed the
// settle, 0 if the key was already set.
const luaSettleOnce = `
local key = KEYS[1]
local envelope = ARGV[1]
local ttl = tonumber(ARGV[2])

local set = redis.call('SET', key, envelope, 'NX')
if ttl > 0 then
    redis.call('EXPIRE', key, ttl)
end
redis.call('PUBLISH', key .. ':notify', envelope)

if set then
    return 1
else
    return 0
end
`
