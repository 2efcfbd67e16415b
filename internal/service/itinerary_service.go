package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wayfarer/internal/cache"
	apierrors "wayfarer/internal/errors"
	"wayfarer/internal/model"
	"wayfarer/internal/repository"
)

const itineraryCacheTTL = 5 * time.Minute

// CreateItineraryInput carries the fields accepted on creation.
type CreateItineraryInput struct {
	Title              string
	Destination        string
	StartDate          *string
	EndDate            *string
	BudgetRange        string
	Interests          []string
	DaysPlan           []model.DayPlan
	DaysCount          int
	IsAIGenerated      bool
	EstimatedTotalCost *float64
	Notes              string
}

// UpdateItineraryInput is the allow-list of mutable fields. A nil pointer
// means the field was absent from the request and keeps its prior value.
type UpdateItineraryInput struct {
	Title              *string
	Destination        *string
	StartDate          *string
	EndDate            *string
	BudgetRange        *string
	Interests          *[]string
	DaysPlan           *[]model.DayPlan
	DaysCount          *int
	EstimatedTotalCost *float64
	Notes              *string
}

// ItineraryService handles CRUD over a user's itineraries. Every
// operation is scoped to the calling owner; another user's record is
// indistinguishable from a missing one. Concurrent updates to the same
// record are last-write-wins on the submitted fields.
type ItineraryService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Itinerary, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Itinerary, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateItineraryInput) (*model.Itinerary, error)
	Update(ctx context.Context, userID, id uuid.UUID, input UpdateItineraryInput) (*model.Itinerary, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type itineraryService struct {
	repo  repository.ItineraryRepository
	cache *cache.Client
}

// NewItineraryService creates a new itinerary service.
func NewItineraryService(repo repository.ItineraryRepository, cache *cache.Client) ItineraryService {
	return &itineraryService{repo: repo, cache: cache}
}

func (s *itineraryService) cacheKey(userID, id uuid.UUID) string {
	return fmt.Sprintf("itinerary:%s:%s", userID, id)
}

// List returns all itineraries owned by the user, newest first. An empty
// result is a valid answer, not an error.
func (s *itineraryService) List(ctx context.Context, userID uuid.UUID) ([]model.Itinerary, error) {
	itineraries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if itineraries == nil {
		itineraries = []model.Itinerary{}
	}
	return itineraries, nil
}

// Get retrieves one itinerary with caching. Missing and foreign-owned
// records both report ErrItineraryNotFound.
func (s *itineraryService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Itinerary, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID, id)); data != nil {
		var cached model.Itinerary
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	itinerary, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	if payload, err := json.Marshal(itinerary); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID, id), payload, itineraryCacheTTL)
	}
	return itinerary, nil
}

// Create stores a new itinerary owned by the caller, applying defaults
// for absent fields, and returns the stored record.
func (s *itineraryService) Create(ctx context.Context, userID uuid.UUID, input CreateItineraryInput) (*model.Itinerary, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Destination) == "" {
		return nil, apierrors.ErrTitleDestinationRequired
	}

	budget := input.BudgetRange
	if budget == "" {
		budget = model.BudgetTierModerate
	}
	interests := model.StringList(input.Interests)
	if interests == nil {
		interests = model.StringList{}
	}
	daysPlan := model.DayPlans(input.DaysPlan)
	if daysPlan == nil {
		daysPlan = model.DayPlans{}
	}
	daysCount := input.DaysCount
	if daysCount <= 0 {
		daysCount = len(daysPlan)
	}
	if daysCount <= 0 {
		daysCount = 1
	}

	itinerary := &model.Itinerary{
		ID:                 uuid.New(),
		UserID:             userID,
		Title:              input.Title,
		Destination:        input.Destination,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		BudgetRange:        budget,
		Interests:          interests,
		DaysPlan:           daysPlan,
		DaysCount:          daysCount,
		IsAIGenerated:      input.IsAIGenerated,
		EstimatedTotalCost: input.EstimatedTotalCost,
		Notes:              input.Notes,
	}
	if err := s.repo.Create(ctx, itinerary); err != nil {
		if errors.Is(err, apierrors.ErrStoreUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("create itinerary: %w", err)
	}
	return itinerary, nil
}

// Update applies the present allow-listed fields to the owner's record. A
// present days_plan fully replaces the prior sequence. The update
// timestamp always advances, even for an empty field set.
func (s *itineraryService) Update(ctx context.Context, userID, id uuid.UUID, input UpdateItineraryInput) (*model.Itinerary, error) {
	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Destination != nil {
		fields["destination"] = *input.Destination
	}
	if input.StartDate != nil {
		fields["start_date"] = *input.StartDate
	}
	if input.EndDate != nil {
		fields["end_date"] = *input.EndDate
	}
	if input.BudgetRange != nil {
		fields["budget_range"] = *input.BudgetRange
	}
	if input.Interests != nil {
		fields["interests"] = model.StringList(*input.Interests)
	}
	if input.DaysPlan != nil {
		fields["days_plan"] = model.DayPlans(*input.DaysPlan)
	}
	if input.DaysCount != nil {
		fields["days_count"] = *input.DaysCount
	}
	if input.EstimatedTotalCost != nil {
		fields["estimated_total_cost"] = *input.EstimatedTotalCost
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}

	rows, err := s.repo.UpdateFields(ctx, id, userID, fields)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if rows == 0 {
		return nil, apierrors.ErrItineraryNotFound
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))

	itinerary, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return itinerary, nil
}

// Delete removes the owner's record. Deleting an absent record and
// deleting another user's record are the same ErrItineraryNotFound.
func (s *itineraryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	rows, err := s.repo.DeleteByIDAndUser(ctx, id, userID)
	if err != nil {
		return mapStoreError(err)
	}
	if rows == 0 {
		return apierrors.ErrItineraryNotFound
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))
	return nil
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apierrors.ErrItineraryNotFound
	case errors.Is(err, apierrors.ErrStoreUnavailable):
		return err
	default:
		return fmt.Errorf("itinerary store: %w", err)
	}
}
