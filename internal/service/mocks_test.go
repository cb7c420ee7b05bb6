package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"mira/internal/ai"
	"mira/internal/auth"
	"mira/internal/events"
	"mira/internal/mail"
	"mira/internal/model"
	"mira/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == 0 {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockVerificationCodeRepository is a mock implementation of VerificationCodeRepository.
// WithTransaction runs the callback against the mock itself.
type MockVerificationCodeRepository struct {
	mock.Mock
}

func (m *MockVerificationCodeRepository) Create(ctx context.Context, code *model.EmailVerificationCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockVerificationCodeRepository) FindLatest(ctx context.Context, userID uint) (*model.EmailVerificationCode, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmailVerificationCode), args.Error(1)
}

func (m *MockVerificationCodeRepository) FindLatestUnused(ctx context.Context, userID uint, code string) (*model.EmailVerificationCode, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmailVerificationCode), args.Error(1)
}

func (m *MockVerificationCodeRepository) MarkUsed(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockVerificationCodeRepository) InvalidateUnused(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockVerificationCodeRepository) MarkUserVerified(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockVerificationCodeRepository) LockUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockVerificationCodeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.VerificationCodeRepository) error) error {
	return fn(ctx, m)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockMailer is a mock implementation of mail.Sender.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockGoogleVerifier is a mock implementation of auth.GoogleVerifier.
type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, idToken string) (*auth.GoogleIdentity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.GoogleIdentity), args.Error(1)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return nil
}

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) Create(ctx context.Context, trip *model.Trip) error {
	args := m.Called(ctx, trip)
	if args.Error(0) == nil && trip.ID == 0 {
		trip.ID = 10
	}
	return args.Error(0)
}

func (m *MockTripRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Trip, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Trip), args.Error(1)
}

func (m *MockTripRepository) ListByUser(ctx context.Context, userID uint) ([]model.Trip, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Trip), args.Error(1)
}

// MockTripMessageRepository is a mock implementation of TripMessageRepository.
type MockTripMessageRepository struct {
	mock.Mock
}

func (m *MockTripMessageRepository) Create(ctx context.Context, msg *model.TripMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockTripMessageRepository) ListByTrip(ctx context.Context, tripID uint) ([]model.TripMessage, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TripMessage), args.Error(1)
}

func (m *MockTripMessageRepository) ListRecent(ctx context.Context, tripID uint, limit int) ([]model.TripMessage, error) {
	args := m.Called(ctx, tripID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TripMessage), args.Error(1)
}

// MockCompletionClient is a mock implementation of CompletionClient.
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, messages []ai.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}
