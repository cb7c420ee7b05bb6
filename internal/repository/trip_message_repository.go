package repository

import (
	"context"

	"gorm.io/gorm"

	"mira/internal/model"
)

// TripMessageRepository appends to and reads a trip's conversation log.
type TripMessageRepository interface {
	Create(ctx context.Context, msg *model.TripMessage) error
	ListByTrip(ctx context.Context, tripID uint) ([]model.TripMessage, error)
	// ListRecent returns up to limit newest messages in chronological order.
	ListRecent(ctx context.Context, tripID uint, limit int) ([]model.TripMessage, error)
}

type tripMessageRepository struct {
	db *gorm.DB
}

// NewTripMessageRepository creates a new trip message repository.
func NewTripMessageRepository(db *gorm.DB) TripMessageRepository {
	return &tripMessageRepository{db: db}
}

func (r *tripMessageRepository) Create(ctx context.Context, msg *model.TripMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *tripMessageRepository) ListByTrip(ctx context.Context, tripID uint) ([]model.TripMessage, error) {
	var msgs []model.TripMessage
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at ASC").Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *tripMessageRepository) ListRecent(ctx context.Context, tripID uint, limit int) ([]model.TripMessage, error) {
	var msgs []model.TripMessage
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
