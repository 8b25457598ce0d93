package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLockerMutualExclusion(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	token, ok, err := locker.TryLock(ctx, "customer:1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, token)

	_, ok, err = locker.TryLock(ctx, "customer:1", time.Minute)
	require.NoError(t, err)
	require.False(t, ok)

	// Independent key is unaffected.
	_, ok, err = locker.TryLock(ctx, "customer:2", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, locker.Release(ctx, "customer:1", token))
	_, ok, err = locker.TryLock(ctx, "customer:1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemoryLockerExpiry(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	_, ok, err := locker.TryLock(ctx, "customer:1", 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok, err = locker.TryLock(ctx, "customer:1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemoryLockerStaleTokenRelease(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	token, ok, err := locker.TryLock(ctx, "customer:1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	// A stale token must not free someone else's lock.
	require.NoError(t, locker.Release(ctx, "customer:1", "not-the-token"))
	_, ok, err = locker.TryLock(ctx, "customer:1", time.Minute)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, locker.Release(ctx, "customer:1", token))
}

func TestMemoryLockerValidation(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	_, _, err := locker.TryLock(ctx, "", time.Minute)
	require.Error(t, err)

	_, _, err = locker.TryLock(ctx, "customer:1", 0)
	require.Error(t, err)
}
