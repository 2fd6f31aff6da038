package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClaimGuard(t *testing.T) {
	guard := newMemoryClaimGuard(time.Hour)
	ctx := context.Background()
	day := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

	ok, err := guard.Acquire(ctx, "rwo-1", day)
	require.NoError(t, err)
	assert.True(t, ok)

	// Same definition and date: claim is held.
	ok, err = guard.Acquire(ctx, "rwo-1", day)
	require.NoError(t, err)
	assert.False(t, ok)

	// Times within the same calendar day share one claim.
	ok, err = guard.Acquire(ctx, "rwo-1", day.Add(5*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	// Different definition or different day: independent claims.
	ok, err = guard.Acquire(ctx, "rwo-2", day)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.Acquire(ctx, "rwo-1", day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, ok)

	// Release frees the claim for a retry.
	require.NoError(t, guard.Release(ctx, "rwo-1", day))
	ok, err = guard.Acquire(ctx, "rwo-1", day)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewClaimGuardWithoutRedis(t *testing.T) {
	guard, err := NewClaimGuard("", "", 0, 0)
	require.NoError(t, err)
	require.NotNil(t, guard)

	ok, err := guard.Acquire(context.Background(), "rwo-1", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)
}
