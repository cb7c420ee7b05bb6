package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mira/internal/cache"
	apperrors "mira/internal/errors"
	"mira/internal/events"
	"mira/internal/logging"
	"mira/internal/model"
	"mira/internal/repository"
)

const (
	tripListCacheTTL = 5 * time.Minute
	maxTripTextLen   = 255
)

// CreateTripInput carries the user-supplied trip fields. Nil pointers mean
// the field was omitted.
type CreateTripInput struct {
	Title          string
	Destination    string
	StartDate      *time.Time
	EndDate        *time.Time
	TravelersCount *uint
	Budget         *decimal.Decimal
	Status         model.TripStatus
}

// TripService exposes trip CRUD scoped to the owning user.
type TripService interface {
	ListTrips(ctx context.Context, userID uint) ([]model.Trip, error)
	CreateTrip(ctx context.Context, userID uint, in CreateTripInput) (*model.Trip, error)
	GetTrip(ctx context.Context, userID, tripID uint) (*model.Trip, error)
}

type tripService struct {
	trips     repository.TripRepository
	cache     *cache.Client
	publisher events.Publisher
	log       logging.Logger
}

// NewTripService builds a TripService with repository and cache.
func NewTripService(trips repository.TripRepository, cache *cache.Client, publisher events.Publisher, log logging.Logger) TripService {
	return &tripService{
		trips:     trips,
		cache:     cache,
		publisher: publisher,
		log:       log.With("component", "trips"),
	}
}

func (s *tripService) cacheKey(userID uint) string {
	return fmt.Sprintf("trips:user:%d", userID)
}

func (s *tripService) ListTrips(ctx context.Context, userID uint) ([]model.Trip, error) {
	var cached []model.Trip
	if s.cache.GetJSON(ctx, s.cacheKey(userID), &cached) {
		return cached, nil
	}

	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	_ = s.cache.SetJSON(ctx, s.cacheKey(userID), trips, tripListCacheTTL)
	return trips, nil
}

func (s *tripService) CreateTrip(ctx context.Context, userID uint, in CreateTripInput) (*model.Trip, error) {
	if err := validateTripInput(in); err != nil {
		return nil, err
	}

	trip := &model.Trip{
		UserID:         userID,
		Title:          strings.TrimSpace(in.Title),
		Destination:    strings.TrimSpace(in.Destination),
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		TravelersCount: 1,
		Budget:         in.Budget,
		Status:         model.TripStatusDraft,
	}
	if in.TravelersCount != nil {
		trip.TravelersCount = *in.TravelersCount
	}
	if in.Status != "" {
		trip.Status = in.Status
	}

	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))

	if err := s.publisher.Publish(ctx, events.New(events.TripCreated, map[string]any{
		"trip_id": trip.ID,
		"user_id": userID,
	})); err != nil {
		s.log.Warn(ctx, "event publish failed", "event", events.TripCreated, "error", err)
	}
	return trip, nil
}

func (s *tripService) GetTrip(ctx context.Context, userID, tripID uint) (*model.Trip, error) {
	return findOwnedTrip(ctx, s.trips, userID, tripID)
}

func findOwnedTrip(ctx context.Context, trips repository.TripRepository, userID, tripID uint) (*model.Trip, error) {
	trip, err := trips.FindByIDForUser(ctx, tripID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return trip, nil
}

func validateTripInput(in CreateTripInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title is required", apperrors.ErrInvalidTrip)
	case utf8.RuneCountInString(in.Title) > maxTripTextLen:
		return fmt.Errorf("%w: title is too long", apperrors.ErrInvalidTrip)
	case strings.TrimSpace(in.Destination) == "":
		return fmt.Errorf("%w: destination is required", apperrors.ErrInvalidTrip)
	case utf8.RuneCountInString(in.Destination) > maxTripTextLen:
		return fmt.Errorf("%w: destination is too long", apperrors.ErrInvalidTrip)
	case in.TravelersCount != nil && *in.TravelersCount < 1:
		return fmt.Errorf("%w: travelers_count must be at least 1", apperrors.ErrInvalidTrip)
	case in.Budget != nil && in.Budget.IsNegative():
		return fmt.Errorf("%w: budget must not be negative", apperrors.ErrInvalidTrip)
	case in.Status != "" && !in.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidTrip, in.Status)
	}
	return nil
}
