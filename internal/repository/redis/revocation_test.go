package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/akimsavar/authwall/internal/model"
	"github.com/akimsavar/authwall/internal/testutil"
)

func newTestStore(t *testing.T) (*RevocationStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRevocationStore(client, model.RealClock{}), mr
}

func TestRevocationStore_RevokeAndCheck(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestRevocationStore_RevokeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	expiry := time.Now().Add(time.Hour)
	require.NoError(t, store.Revoke(ctx, "jti-1", expiry))
	require.NoError(t, store.Revoke(ctx, "jti-1", expiry))

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestRevocationStore_EntryExpiresWithToken(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))

	mr.FastForward(2 * time.Minute)

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestRevocationStore_AlreadyExpiredToken(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	// revoking a token past its natural expiry is still a success
	require.NoError(t, store.Revoke(ctx, "jti-old", time.Now().Add(-time.Hour)))
}

func TestRevocationStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	mr.Close()

	err := store.Revoke(ctx, "jti-1", time.Now().Add(time.Hour))
	require.ErrorIs(t, err, model.ErrStoreUnavailable)

	_, err = store.IsRevoked(ctx, "jti-1")
	require.ErrorIs(t, err, model.ErrStoreUnavailable)
}

func TestRevocationStore_FixedClockTTL(t *testing.T) {
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewRevocationStore(client, testutil.NewFixedClock(now))

	require.NoError(t, store.Revoke(ctx, "jti-1", now.Add(30*time.Minute)))
	require.InDelta(t, (30 * time.Minute).Seconds(), mr.TTL("revoked:jti-1").Seconds(), 1)
}
