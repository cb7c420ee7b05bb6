// Package mail sends transactional email.
package mail

import (
	"context"
	"fmt"

	"mira/internal/logging"
)

// Message is a plaintext email to a single recipient.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a Message or returns an error.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// VerificationMessage builds the signup code email.
func VerificationMessage(to, code string) Message {
	return Message{
		To:      to,
		Subject: "Confirm your registration",
		Body:    fmt.Sprintf("Your verification code: %s", code),
	}
}

// LogSender writes messages to the log instead of sending them.
// Used in development when no SendGrid key is configured.
type LogSender struct {
	log logging.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(log logging.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.log.Info(ctx, "email not sent, no provider configured",
		"to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}
