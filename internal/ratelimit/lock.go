// Package ratelimit serializes mutating requests per customer so a
// double-submitted form cannot run two balance mutations concurrently.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	redis "github.com/redis/go-redis/v9"
)

// Locker is a single-attempt TTL lock. The redis implementation covers
// multi-replica deployments; the in-process one is the fallback when no
// redis address is configured.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)
	Release(ctx context.Context, key, token string) error
}

const lockReleaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

type redisLocker struct {
	client *redis.Client
	script *redis.Script
}

func NewRedisLocker(client *redis.Client) Locker {
	return &redisLocker{
		client: client,
		script: redis.NewScript(lockReleaseScript),
	}
}

func (l *redisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if key == "" {
		return "", false, errors.New("lock key is empty")
	}
	if ttl <= 0 {
		return "", false, errors.New("lock ttl must be positive")
	}

	token := ulid.Make().String()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

func (l *redisLocker) Release(ctx context.Context, key, token string) error {
	if key == "" || token == "" {
		return nil
	}
	return l.script.Run(ctx, l.client, []string{key}, token).Err()
}

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

type memoryLocker struct {
	mu    sync.Mutex
	locks map[string]memoryEntry
}

// NewMemoryLocker returns a process-local Locker. Only safe for
// single-replica deployments.
func NewMemoryLocker() Locker {
	return &memoryLocker{locks: make(map[string]memoryEntry)}
}

func (l *memoryLocker) TryLock(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	if key == "" {
		return "", false, errors.New("lock key is empty")
	}
	if ttl <= 0 {
		return "", false, errors.New("lock ttl must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if entry, ok := l.locks[key]; ok && entry.expiresAt.After(now) {
		return "", false, nil
	}

	token := ulid.Make().String()
	l.locks[key] = memoryEntry{token: token, expiresAt: now.Add(ttl)}
	return token, true, nil
}

func (l *memoryLocker) Release(_ context.Context, key, token string) error {
	if key == "" || token == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, ok := l.locks[key]; ok && entry.token == token {
		delete(l.locks, key)
	}
	return nil
}
