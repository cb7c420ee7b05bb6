package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mira/internal/model"
)

// VerificationCodeRepository stores one-time email verification codes.
type VerificationCodeRepository interface {
	Create(ctx context.Context, code *model.EmailVerificationCode) error
	// FindLatest returns the most recently created code for the user, used or not.
	FindLatest(ctx context.Context, userID uint) (*model.EmailVerificationCode, error)
	// FindLatestUnused returns the newest unused code with the given value.
	FindLatestUnused(ctx context.Context, userID uint, code string) (*model.EmailVerificationCode, error)
	// MarkUsed consumes the code. It reports false when the code was already used.
	MarkUsed(ctx context.Context, id uint) (bool, error)
	// InvalidateUnused marks every unused code of the user as used.
	InvalidateUnused(ctx context.Context, userID uint) error
	// MarkUserVerified flags the owning user as verified. Repeating it is a no-op.
	MarkUserVerified(ctx context.Context, userID uint) error
	// LockUser takes a row lock on the owning user for the rest of the transaction.
	LockUser(ctx context.Context, userID uint) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo VerificationCodeRepository) error) error
}

type verificationCodeRepository struct {
	db *gorm.DB
}

// NewVerificationCodeRepository creates a new verification code repository.
func NewVerificationCodeRepository(db *gorm.DB) VerificationCodeRepository {
	return &verificationCodeRepository{db: db}
}

func (r *verificationCodeRepository) Create(ctx context.Context, code *model.EmailVerificationCode) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(code).Error
}

func (r *verificationCodeRepository) FindLatest(ctx context.Context, userID uint) (*model.EmailVerificationCode, error) {
	var code model.EmailVerificationCode
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *verificationCodeRepository) FindLatestUnused(ctx context.Context, userID uint, value string) (*model.EmailVerificationCode, error) {
	var code model.EmailVerificationCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND is_used = ?", userID, value, false).
		Order("created_at DESC").Order("id DESC").
		First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *verificationCodeRepository) MarkUsed(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.EmailVerificationCode{}).
		Where("id = ? AND is_used = ?", id, false).
		Update("is_used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *verificationCodeRepository) InvalidateUnused(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&model.EmailVerificationCode{}).
		Where("user_id = ? AND is_used = ?", userID, false).
		Update("is_used", true).Error
}

func (r *verificationCodeRepository) MarkUserVerified(ctx context.Context, userID uint) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("is_email_verified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// already verified rows also report zero on MySQL, so confirm existence
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *verificationCodeRepository) LockUser(ctx context.Context, userID uint) error {
	var user model.User
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", userID).
		First(&user).Error
}

// WithTransaction executes fn within a database transaction.
func (r *verificationCodeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo VerificationCodeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &verificationCodeRepository{db: tx})
	})
}
