package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"
)

// ErrGoogleTokenRejected wraps every verification failure.
var ErrGoogleTokenRejected = errors.New("google id token rejected")

// GoogleIdentity is the subset of ID token claims the app relies on.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
}

// GoogleVerifier checks a Google ID token and returns the identity it asserts.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// IDTokenVerifier validates tokens against Google's published keys.
type IDTokenVerifier struct {
	clientID string
	validate validateFunc
}

// NewGoogleVerifier builds a verifier for tokens issued to clientID.
func NewGoogleVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{clientID: clientID, validate: idtoken.Validate}
}

// Verify validates signature, expiry and audience, then extracts the identity.
func (v *IDTokenVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	if v.clientID == "" {
		return nil, fmt.Errorf("%w: google client id not configured", ErrGoogleTokenRejected)
	}

	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGoogleTokenRejected, err)
	}

	email, _ := payload.Claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" || payload.Subject == "" {
		return nil, fmt.Errorf("%w: token has no email or subject", ErrGoogleTokenRejected)
	}

	verified, _ := payload.Claims["email_verified"].(bool)
	return &GoogleIdentity{
		Subject:       payload.Subject,
		Email:         email,
		EmailVerified: verified,
	}, nil
}
