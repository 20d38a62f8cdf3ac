package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySyncLock_AcquireRelease(t *testing.T) {
	lock := NewMemorySyncLock()
	ctx := context.Background()

	ok, err := lock.Acquire(ctx, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second acquire while held must fail
	ok, err = lock.Acquire(ctx, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, lock.Release(ctx))

	ok, err = lock.Acquire(ctx, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemorySyncLock_ExpiredLockReacquirable(t *testing.T) {
	lock := NewMemorySyncLock()
	ctx := context.Background()

	ok, err := lock.Acquire(ctx, 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	ok, err = lock.Acquire(ctx, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expired lock must be reacquirable")
}

func TestMemorySyncLock_ReleaseIdempotent(t *testing.T) {
	lock := NewMemorySyncLock()
	ctx := context.Background()

	require.NoError(t, lock.Release(ctx))
	require.NoError(t, lock.Release(ctx))
}
