package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mira/internal/config"
	"mira/internal/db"
	"mira/internal/logging"
	"mira/internal/model"
	"mira/internal/repository"
)

// Seeds a verified staff account and, when it has none, a sample draft trip.
//
//	SEED_ADMIN_EMAIL=admin@mira.local SEED_ADMIN_PASSWORD=secret123 go run ./cmd/seed
func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || len(password) < 8 {
		logger.Error(ctx, "SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD (min 8 chars) are required")
		os.Exit(1)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, logger.Slog())
	if err != nil {
		logger.Error(ctx, "connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB, false); err != nil {
		logger.Error(ctx, "run migrations", "error", err)
		os.Exit(1)
	}

	users := repository.NewUserRepository(gormDB)
	trips := repository.NewTripRepository(gormDB)

	user, created, err := seedAdmin(ctx, users, email, password)
	if err != nil {
		logger.Error(ctx, "seed admin", "error", err)
		os.Exit(1)
	}
	logger.Info(ctx, "admin ready", "user_id", user.ID, "email", user.Email, "created", created)

	trip, err := seedSampleTrip(ctx, trips, user.ID)
	if err != nil {
		logger.Error(ctx, "seed sample trip", "error", err)
		os.Exit(1)
	}
	if trip != nil {
		logger.Info(ctx, "sample trip created", "trip_id", trip.ID)
	}
	logger.Info(ctx, "seed completed")
}

// seedAdmin returns the existing user for email or creates a verified staff one.
func seedAdmin(ctx context.Context, users repository.UserRepository, email, password string) (*model.User, bool, error) {
	existing, err := users.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("lookup %s: %w", email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		Email:           email,
		PasswordHash:    string(hash),
		IsEmailVerified: true,
		IsStaff:         true,
		IsActive:        true,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("create %s: %w", email, err)
	}
	return user, true, nil
}

// seedSampleTrip creates one draft trip unless the user already has trips.
func seedSampleTrip(ctx context.Context, trips repository.TripRepository, userID uint) (*model.Trip, error) {
	existing, err := trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	if len(existing) > 0 {
		return nil, nil
	}

	start := time.Now().UTC().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 6)
	budget := decimal.NewFromInt(2000)
	trip := &model.Trip{
		UserID:         userID,
		Title:          "Spring in Lisbon",
		Destination:    "Lisbon, Portugal",
		StartDate:      &start,
		EndDate:        &end,
		TravelersCount: 2,
		Budget:         &budget,
		Status:         model.TripStatusDraft,
	}
	if err := trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}
