package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessToken(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken(7, "a@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	_, err = svc.ValidateRefreshToken(token)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestJWTService_RefreshToken(t *testing.T) {
	svc := NewJWTService("secret", 0, 0)
	assert.Equal(t, DefaultRefreshTokenExpiry, svc.RefreshTTL())

	tokenID, token, err := svc.GenerateRefreshToken(3, "b@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, time.Hour)
	other := NewJWTService("other-secret", time.Minute, time.Hour)

	foreign, err := other.GenerateAccessToken(1, "x@example.com")
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:    1,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredStr, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1, TokenType: TokenTypeAccess})
	noneStr, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong secret", foreign},
		{"expired", expiredStr},
		{"alg none", noneStr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
