package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mira/internal/cache"
)

const refreshTokenKeyPrefix = "refresh_token:"

// ErrRefreshTokenNotFound is returned when a refresh token ID is unknown or revoked.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (userID uint, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenStore keeps issued refresh token IDs in Redis so they can be revoked.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

type refreshTokenRecord struct {
	UserID   uint      `json:"user_id"`
	IssuedAt time.Time `json:"issued_at"`
}

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreRefreshToken stores a refresh token in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	rec := refreshTokenRecord{UserID: userID, IssuedAt: time.Now().UTC()}
	if err := s.cache.SetJSON(ctx, refreshTokenKeyPrefix+tokenID, rec, ttl); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken returns the owner of a stored refresh token.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, error) {
	var rec refreshTokenRecord
	if !s.cache.GetJSON(ctx, refreshTokenKeyPrefix+tokenID, &rec) {
		return 0, ErrRefreshTokenNotFound
	}
	return rec.UserID, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}
