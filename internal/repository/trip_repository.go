package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mira/internal/model"
)

// TripRepository persists trips. Every read is scoped to the owning user.
type TripRepository interface {
	Create(ctx context.Context, trip *model.Trip) error
	FindByIDForUser(ctx context.Context, id, userID uint) (*model.Trip, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Trip, error)
}

type tripRepository struct {
	db *gorm.DB
}

// NewTripRepository creates a new trip repository.
func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(ctx context.Context, trip *model.Trip) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(trip).Error
}

func (r *tripRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Trip, error) {
	var trip model.Trip
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&trip).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) ListByUser(ctx context.Context, userID uint) ([]model.Trip, error) {
	var trips []model.Trip
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}
