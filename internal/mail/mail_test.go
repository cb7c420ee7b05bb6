package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mira/internal/logging"
)

type mockSendGridClient struct {
	mock.Mock
}

func (m *mockSendGridClient) SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rest.Response), args.Error(1)
}

func TestVerificationMessage(t *testing.T) {
	msg := VerificationMessage("u@example.com", "004217")
	assert.Equal(t, "u@example.com", msg.To)
	assert.Equal(t, "Confirm your registration", msg.Subject)
	assert.Equal(t, "Your verification code: 004217", msg.Body)
}

func TestSendGridSender_Send(t *testing.T) {
	tests := []struct {
		name    string
		resp    *rest.Response
		err     error
		wantErr bool
	}{
		{"accepted", &rest.Response{StatusCode: 202}, nil, false},
		{"rejected", &rest.Response{StatusCode: 401, Body: "unauthorized"}, nil, true},
		{"transport", nil, errors.New("dial tcp: timeout"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockSendGridClient)
			client.On("SendWithContext", mock.Anything, mock.MatchedBy(func(m *sgmail.SGMailV3) bool {
				return m.Subject == "Confirm your registration" &&
					m.From.Address == "no-reply@mira.local" &&
					len(m.Personalizations) == 1 &&
					m.Personalizations[0].To[0].Address == "u@example.com" &&
					m.Content[0].Type == "text/plain" &&
					m.Content[0].Value == "Your verification code: 123456"
			})).Return(tt.resp, tt.err)

			s := &SendGridSender{client: client, from: sgmail.NewEmail("Mira", "no-reply@mira.local")}
			err := s.Send(context.Background(), VerificationMessage("u@example.com", "123456"))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			client.AssertExpectations(t)
		})
	}
}

func TestLogSender_Send(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(logging.NewWithWriter(&buf, "info", "text"))

	require.NoError(t, s.Send(context.Background(), VerificationMessage("u@example.com", "654321")))
	assert.Contains(t, buf.String(), "u@example.com")
	assert.Contains(t, buf.String(), "654321")
}
