package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apierrors "wayfarer/internal/errors"
	"wayfarer/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.JSONMap) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository. A nil db is allowed;
// every operation then fails closed with ErrStoreUnavailable, mirroring a
// deployment whose store is not configured.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if r.db == nil {
		return apierrors.ErrStoreUnavailable
	}
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if r.db == nil {
		return nil, apierrors.ErrStoreUnavailable
	}
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if r.db == nil {
		return nil, apierrors.ErrStoreUnavailable
	}
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.JSONMap) (*model.User, error) {
	if r.db == nil {
		return nil, apierrors.ErrStoreUnavailable
	}
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("preferences", prefs).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}
