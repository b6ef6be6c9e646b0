package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenStore(t *testing.T) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewTokenStore(client), mr
}

func TestTokenStoreRevoke(t *testing.T) {
	store, _ := newTestTokenStore(t)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "some-token")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "some-token", time.Hour))

	revoked, err = store.IsRevoked(ctx, "some-token")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestTokenStoreRevokeExpiredToken(t *testing.T) {
	store, mr := newTestTokenStore(t)
	ctx := context.Background()

	// A token whose lifetime already ran out needs no entry.
	require.NoError(t, store.Revoke(ctx, "stale-token", -time.Minute))
	assert.Equal(t, 0, len(mr.Keys()))

	revoked, err := store.IsRevoked(ctx, "stale-token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenStoreRevocationExpires(t *testing.T) {
	store, mr := newTestTokenStore(t)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "short-token", time.Minute))
	mr.FastForward(2 * time.Minute)

	revoked, err := store.IsRevoked(ctx, "short-token")
	require.NoError(t, err)
	assert.False(t, revoked)
}
