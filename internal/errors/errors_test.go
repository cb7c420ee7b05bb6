package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"user not found", ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"bad code", ErrInvalidOrExpiredCode, http.StatusBadRequest, "Invalid or expired code"},
		{"cooldown", ErrResendTooSoon, http.StatusTooManyRequests, "Try again later"},
		{"already verified", ErrAlreadyVerified, http.StatusBadRequest, "Email already verified"},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"unverified", ErrEmailNotVerified, http.StatusForbidden, "Email not verified"},
		{"google", ErrInvalidGoogleToken, http.StatusBadRequest, "Invalid Google token"},
		{"missing message", ErrMessageRequired, http.StatusBadRequest, "Message is required"},
		{"trip", ErrTripNotFound, http.StatusNotFound, "Trip not found"},
		{"ai", fmt.Errorf("chat: %w", ErrAIUnavailable), http.StatusServiceUnavailable, "AI service is temporarily unavailable. Try again later."},
		{"invalid trip", fmt.Errorf("%w: budget must not be negative", ErrInvalidTrip), http.StatusBadRequest, "invalid trip: budget must not be negative"},
		{"unknown", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.message, httpErr.ToErrorResponse().Detail)
		})
	}
}
