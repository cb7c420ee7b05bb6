package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mira/internal/auth"
	"mira/internal/config"
	apperrors "mira/internal/errors"
	"mira/internal/events"
	"mira/internal/logging"
	"mira/internal/mail"
	"mira/internal/model"
	"mira/internal/repository"
)

const (
	bcryptCost        = 10
	minPasswordLength = 8
	codeDigits        = 6
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService handles registration, email verification and token issuance.
type AuthService interface {
	Register(ctx context.Context, email, password string) error
	VerifyEmail(ctx context.Context, email, code string) error
	ResendCode(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	GoogleLogin(ctx context.Context, idToken string) (*TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID uint) (*model.User, error)
}

type authService struct {
	users      repository.UserRepository
	codes      repository.VerificationCodeRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	mailer     mail.Sender
	google     auth.GoogleVerifier
	publisher  events.Publisher
	log        logging.Logger
	cfg        config.AuthConfig

	now     func() time.Time
	newCode func() (string, error)
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	codes repository.VerificationCodeRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	mailer mail.Sender,
	google auth.GoogleVerifier,
	publisher events.Publisher,
	log logging.Logger,
	cfg config.AuthConfig,
) AuthService {
	return &authService{
		users:      users,
		codes:      codes,
		jwtService: jwtService,
		tokenStore: tokenStore,
		mailer:     mailer,
		google:     google,
		publisher:  publisher,
		log:        log.With("component", "auth"),
		cfg:        cfg,
		now:        time.Now,
		newCode:    generateCode,
	}
}

// Register creates an unverified account and mails it a verification code.
func (s *authService) Register(ctx context.Context, email, password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return apperrors.ErrPasswordTooShort
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return apperrors.ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	code, err := s.issueCode(ctx, s.codes, user.ID)
	if err != nil {
		return err
	}

	if err := s.sendCode(ctx, user.Email, code); err != nil {
		return err
	}

	s.publish(ctx, events.UserRegistered, map[string]any{"user_id": user.ID, "email": user.Email, "provider": "password"})
	return nil
}

// VerifyEmail consumes the newest matching unused code and marks the user verified.
func (s *authService) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return err
	}

	rec, err := s.codes.FindLatestUnused(ctx, user.ID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidOrExpiredCode
		}
		return fmt.Errorf("find code: %w", err)
	}
	if rec.IsExpired(s.now(), s.cfg.CodeTTL) {
		return apperrors.ErrInvalidOrExpiredCode
	}

	err = s.codes.WithTransaction(ctx, func(ctx context.Context, codes repository.VerificationCodeRepository) error {
		consumed, err := codes.MarkUsed(ctx, rec.ID)
		if err != nil {
			return fmt.Errorf("mark code used: %w", err)
		}
		if !consumed {
			// lost a race with a concurrent verification of the same code
			return apperrors.ErrInvalidOrExpiredCode
		}
		if err := codes.MarkUserVerified(ctx, user.ID); err != nil {
			return fmt.Errorf("mark email verified: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.UserEmailVerified, map[string]any{"user_id": user.ID})
	return nil
}

// ResendCode replaces all pending codes with a fresh one, at most once per cooldown window.
func (s *authService) ResendCode(ctx context.Context, email string) error {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return apperrors.ErrAlreadyVerified
	}

	var code string
	err = s.codes.WithTransaction(ctx, func(ctx context.Context, codes repository.VerificationCodeRepository) error {
		if err := codes.LockUser(ctx, user.ID); err != nil {
			return fmt.Errorf("lock user: %w", err)
		}

		latest, err := codes.FindLatest(ctx, user.ID)
		switch {
		case err == nil:
			if s.now().Sub(latest.CreatedAt) < s.cfg.ResendCooldown {
				return apperrors.ErrResendTooSoon
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("find latest code: %w", err)
		}

		if err := codes.InvalidateUnused(ctx, user.ID); err != nil {
			return fmt.Errorf("invalidate codes: %w", err)
		}

		code, err = s.issueCode(ctx, codes, user.ID)
		return err
	})
	if err != nil {
		return err
	}

	return s.sendCode(ctx, user.Email, code)
}

// Login authenticates with email and password and returns a token pair.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.IsActive || !user.HasPassword() {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsEmailVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	return s.issueTokens(ctx, user)
}

// GoogleLogin exchanges a Google ID token for a token pair, creating the
// user on first sight. An existing account with the same email is reused.
func (s *authService) GoogleLogin(ctx context.Context, idToken string) (*TokenPair, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, apperrors.ErrIDTokenRequired
	}

	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		s.log.Warn(ctx, "google token rejected", "error", err)
		return nil, apperrors.ErrInvalidGoogleToken
	}

	user, err := s.users.FindByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		if !user.IsActive {
			return nil, apperrors.ErrInvalidCredentials
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err = s.createGoogleUser(ctx, identity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) createGoogleUser(ctx context.Context, identity *auth.GoogleIdentity) (*model.User, error) {
	subject := identity.Subject
	user := &model.User{
		Email:           identity.Email,
		GoogleID:        &subject,
		IsEmailVerified: true,
		IsActive:        true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create google user: %w", err)
		}
		// created concurrently by another request
		existing, findErr := s.users.FindByEmail(ctx, identity.Email)
		if findErr != nil {
			return nil, fmt.Errorf("find google user: %w", findErr)
		}
		return existing, nil
	}

	s.publish(ctx, events.UserRegistered, map[string]any{"user_id": user.ID, "email": user.Email, "provider": "google"})
	return user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	storedUserID, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || storedUserID != claims.UserID {
		return "", apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, claims.ID)
}

// Me returns the authenticated user's profile.
func (s *authService) Me(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *authService) findUser(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *authService) issueCode(ctx context.Context, codes repository.VerificationCodeRepository, userID uint) (string, error) {
	code, err := s.newCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	rec := &model.EmailVerificationCode{
		UserID:    userID,
		Code:      code,
		CreatedAt: s.now(),
	}
	if err := codes.Create(ctx, rec); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}
	return code, nil
}

func (s *authService) sendCode(ctx context.Context, email, code string) error {
	if err := s.mailer.Send(ctx, mail.VerificationMessage(email, code)); err != nil {
		s.log.Error(ctx, "verification email failed", "email", email, "error", err)
		return fmt.Errorf("%w: %v", apperrors.ErrEmailDelivery, err)
	}
	return nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*TokenPair, error) {
	access, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refresh, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, s.jwtService.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *authService) publish(ctx context.Context, eventType string, data map[string]any) {
	if err := s.publisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.log.Warn(ctx, "event publish failed", "event", eventType, "error", err)
	}
}

// generateCode returns a uniformly random zero-padded 6-digit code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}
