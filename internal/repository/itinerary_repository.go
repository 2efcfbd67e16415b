package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apierrors "wayfarer/internal/errors"
	"wayfarer/internal/model"
)

// ItineraryRepository defines itinerary persistence operations. Every
// read, write and delete filters by (id, user_id) jointly, never by id
// alone, so records are invisible outside their owner.
type ItineraryRepository interface {
	Create(ctx context.Context, itinerary *model.Itinerary) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Itinerary, error)
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.Itinerary, error)
	UpdateFields(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) (int64, error)
	DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) (int64, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

// NewItineraryRepository builds a GORM-backed repository.
func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) Create(ctx context.Context, itinerary *model.Itinerary) error {
	if r.db == nil {
		return apierrors.ErrStoreUnavailable
	}
	return r.db.WithContext(ctx).Create(itinerary).Error
}

func (r *itineraryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Itinerary, error) {
	if r.db == nil {
		return nil, apierrors.ErrStoreUnavailable
	}
	var itineraries []model.Itinerary
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&itineraries).Error; err != nil {
		return nil, err
	}
	return itineraries, nil
}

func (r *itineraryRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.Itinerary, error) {
	if r.db == nil {
		return nil, apierrors.ErrStoreUnavailable
	}
	var itinerary model.Itinerary
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&itinerary).Error; err != nil {
		return nil, err
	}
	return &itinerary, nil
}

// UpdateFields applies a prepared column map to the owner's record and
// reports how many rows matched; zero means absent or not owned.
func (r *itineraryRepository) UpdateFields(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) (int64, error) {
	if r.db == nil {
		return 0, apierrors.ErrStoreUnavailable
	}
	res := r.db.WithContext(ctx).Model(&model.Itinerary{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *itineraryRepository) DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	if r.db == nil {
		return 0, apierrors.ErrStoreUnavailable
	}
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Itinerary{})
	return res.RowsAffected, res.Error
}
