package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func TestIDTokenVerifier_Verify(t *testing.T) {
	tests := []struct {
		name     string
		clientID string
		validate validateFunc
		want     *GoogleIdentity
		wantErr  bool
	}{
		{
			name:     "valid token",
			clientID: "client-1",
			validate: func(_ context.Context, token, aud string) (*idtoken.Payload, error) {
				if token != "tok" || aud != "client-1" {
					return nil, errors.New("unexpected args")
				}
				return &idtoken.Payload{Subject: "sub-1", Claims: map[string]any{"email": "g@example.com", "email_verified": true}}, nil
			},
			want: &GoogleIdentity{Subject: "sub-1", Email: "g@example.com", EmailVerified: true},
		},
		{
			name:     "validator rejects",
			clientID: "client-1",
			validate: func(context.Context, string, string) (*idtoken.Payload, error) {
				return nil, errors.New("idtoken: audience provided does not match aud claim")
			},
			wantErr: true,
		},
		{
			name:     "no email claim",
			clientID: "client-1",
			validate: func(context.Context, string, string) (*idtoken.Payload, error) {
				return &idtoken.Payload{Subject: "sub-1", Claims: map[string]any{}}, nil
			},
			wantErr: true,
		},
		{
			name:     "not configured",
			clientID: "",
			validate: func(context.Context, string, string) (*idtoken.Payload, error) {
				t.Fatal("validate must not be called")
				return nil, nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &IDTokenVerifier{clientID: tt.clientID, validate: tt.validate}
			got, err := v.Verify(context.Background(), "tok")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrGoogleTokenRejected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
