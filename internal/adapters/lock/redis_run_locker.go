package lock

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lease only when the caller still holds it, so an
// expired lease taken over by another instance is never released by the
// original holder.
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`

// RedisRunLocker serializes named runs across all service instances with a
// Redis lease (SET NX PX). Acquire polls until the lease is granted or the
// context is cancelled; the TTL bounds how long a crashed holder can block
// everyone else.
type RedisRunLocker struct {
	Client *redis.Client
	TTL    time.Duration
	Retry  time.Duration
}

func NewRedisRunLocker(client *redis.Client) *RedisRunLocker {
	return &RedisRunLocker{
		Client: client,
		TTL:    30 * time.Second,
		Retry:  50 * time.Millisecond,
	}
}

func (l *RedisRunLocker) Acquire(ctx context.Context, name string) (func(), error) {
	key := "lease:" + name
	token := uuid.NewString()

	for {
		ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lease %q: %w", name, err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(l.Retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("acquire lease %q: %w", name, ctx.Err())
		case <-timer.C:
		}
	}

	release := func() {
		// Release must not inherit the run's cancellation: a cancelled run
		// still has to free the lease.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := l.Client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
			log.Printf("release lease %q failed: %v", name, err)
		}
	}

	return release, nil
}
