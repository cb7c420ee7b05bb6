package service

import (
	"context"
	"fmt"
	"strings"

	"mira/internal/ai"
	"mira/internal/config"
	apperrors "mira/internal/errors"
	"mira/internal/events"
	"mira/internal/logging"
	"mira/internal/model"
	"mira/internal/repository"
)

const (
	contextMessageLimit    = 4
	contextMessageMaxRunes = 1000
)

// CompletionClient produces a model reply for a conversation.
type CompletionClient interface {
	Complete(ctx context.Context, messages []ai.Message) (string, error)
}

// ChatService runs the trip chat: persist, ask the model, persist the answer.
type ChatService interface {
	SendMessage(ctx context.Context, userID, tripID uint, message string) (string, error)
	BuildContext(ctx context.Context, trip *model.Trip) ([]ai.Message, error)
	ListMessages(ctx context.Context, userID, tripID uint) ([]model.TripMessage, error)
}

type chatService struct {
	trips     repository.TripRepository
	messages  repository.TripMessageRepository
	client    CompletionClient
	publisher events.Publisher
	log       logging.Logger
	cfg       config.ChatConfig
}

// NewChatService creates a new chat service.
func NewChatService(
	trips repository.TripRepository,
	messages repository.TripMessageRepository,
	client CompletionClient,
	publisher events.Publisher,
	log logging.Logger,
	cfg config.ChatConfig,
) ChatService {
	return &chatService{
		trips:     trips,
		messages:  messages,
		client:    client,
		publisher: publisher,
		log:       log.With("component", "chat"),
		cfg:       cfg,
	}
}

// SendMessage stores the user's message, asks the model and stores the reply.
// The user message is kept even when the model call fails.
func (s *chatService) SendMessage(ctx context.Context, userID, tripID uint, message string) (string, error) {
	trip, err := findOwnedTrip(ctx, s.trips, userID, tripID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(message) == "" {
		return "", apperrors.ErrMessageRequired
	}

	userMsg := &model.TripMessage{TripID: trip.ID, Role: model.RoleUser, Content: message}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return "", fmt.Errorf("store user message: %w", err)
	}

	prompt, err := s.promptFor(ctx, trip, message)
	if err != nil {
		return "", err
	}

	answer, err := s.client.Complete(ctx, prompt)
	if err != nil {
		s.log.Error(ctx, "ai completion failed", "trip_id", trip.ID, "error", err)
		return "", fmt.Errorf("%w: %v", apperrors.ErrAIUnavailable, err)
	}

	reply := &model.TripMessage{TripID: trip.ID, Role: model.RoleAssistant, Content: answer}
	if err := s.messages.Create(ctx, reply); err != nil {
		return "", fmt.Errorf("store assistant message: %w", err)
	}

	if err := s.publisher.Publish(ctx, events.New(events.TripMessageAnswered, map[string]any{
		"trip_id":    trip.ID,
		"user_id":    userID,
		"message_id": reply.ID,
	})); err != nil {
		s.log.Warn(ctx, "event publish failed", "event", events.TripMessageAnswered, "error", err)
	}
	return answer, nil
}

func (s *chatService) promptFor(ctx context.Context, trip *model.Trip, message string) ([]ai.Message, error) {
	if s.cfg.Mode == config.ChatModeContext {
		return s.BuildContext(ctx, trip)
	}
	return []ai.Message{{Role: string(model.RoleUser), Content: message}}, nil
}

// BuildContext returns the trip system prompt followed by the most recent
// messages in chronological order, each clipped to a fixed length.
func (s *chatService) BuildContext(ctx context.Context, trip *model.Trip) ([]ai.Message, error) {
	recent, err := s.messages.ListRecent(ctx, trip.ID, contextMessageLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent messages: %w", err)
	}

	out := make([]ai.Message, 0, len(recent)+1)
	out = append(out, ai.Message{Role: string(model.RoleSystem), Content: TripSystemPrompt(trip)})
	for _, m := range recent {
		out = append(out, ai.Message{Role: string(m.Role), Content: truncateRunes(m.Content, contextMessageMaxRunes)})
	}
	return out, nil
}

func (s *chatService) ListMessages(ctx context.Context, userID, tripID uint) ([]model.TripMessage, error) {
	trip, err := findOwnedTrip(ctx, s.trips, userID, tripID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
