package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mira/internal/cache"
)

func TestTokenStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewTokenStore(cache.New(mr.Addr(), "", 0))
	ctx := context.Background()

	require.NoError(t, store.StoreRefreshToken(ctx, "jti-1", 42, time.Hour))
	assert.True(t, mr.Exists("refresh_token:jti-1"))

	userID, err := store.GetRefreshToken(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	require.NoError(t, store.DeleteRefreshToken(ctx, "jti-1"))
	_, err = store.GetRefreshToken(ctx, "jti-1")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestTokenStore_Expires(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewTokenStore(cache.New(mr.Addr(), "", 0))
	ctx := context.Background()

	require.NoError(t, store.StoreRefreshToken(ctx, "jti-2", 1, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.GetRefreshToken(ctx, "jti-2")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}
