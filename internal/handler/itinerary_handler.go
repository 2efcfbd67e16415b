package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"wayfarer/internal/auth"
	apierrors "wayfarer/internal/errors"
	"wayfarer/internal/model"
	"wayfarer/internal/service"
)

// ItineraryHandler handles itinerary CRUD endpoints.
type ItineraryHandler struct {
	itineraryService service.ItineraryService
}

// NewItineraryHandler creates a new itinerary handler.
func NewItineraryHandler(itineraryService service.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{itineraryService: itineraryService}
}

// CreateItineraryRequest represents an itinerary creation request.
type CreateItineraryRequest struct {
	Title              string          `json:"title"`
	Destination        string          `json:"destination"`
	StartDate          *string         `json:"start_date"`
	EndDate            *string         `json:"end_date"`
	BudgetRange        string          `json:"budget_range"`
	Interests          []string        `json:"interests"`
	DaysPlan           []model.DayPlan `json:"days_plan"`
	DaysCount          int             `json:"days_count"`
	IsAIGenerated      bool            `json:"is_ai_generated"`
	EstimatedTotalCost *float64        `json:"estimated_total_cost"`
	Notes              string          `json:"notes"`
}

// UpdateItineraryRequest represents a partial update. Fields not present
// in the body keep their stored values; anything outside this allow-list
// is ignored by the decoder.
type UpdateItineraryRequest struct {
	Title              *string          `json:"title"`
	Destination        *string          `json:"destination"`
	StartDate          *string          `json:"start_date"`
	EndDate            *string          `json:"end_date"`
	BudgetRange        *string          `json:"budget_range"`
	Interests          *[]string        `json:"interests"`
	DaysPlan           *[]model.DayPlan `json:"days_plan"`
	DaysCount          *int             `json:"days_count"`
	EstimatedTotalCost *float64         `json:"estimated_total_cost"`
	Notes              *string          `json:"notes"`
}

// List godoc
// @Summary List the user's itineraries, newest first
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]model.Itinerary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /itineraries [get]
func (h *ItineraryHandler) List(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apierrors.ErrorResponse{Error: "Invalid token"})
	}

	itineraries, err := h.itineraryService.List(c.Request().Context(), user.ID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"itineraries": itineraries})
}

// Get godoc
// @Summary Get one itinerary
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Success 200 {object} map[string]model.Itinerary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /itineraries/{id} [get]
func (h *ItineraryHandler) Get(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apierrors.ErrorResponse{Error: "Invalid token"})
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// malformed ids look exactly like missing records
		return domainError(apierrors.ErrItineraryNotFound)
	}

	itinerary, err := h.itineraryService.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"itinerary": itinerary})
}

// Create godoc
// @Summary Create an itinerary
// @Tags itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateItineraryRequest true "Itinerary fields"
// @Success 201 {object} map[string]model.Itinerary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /itineraries [post]
func (h *ItineraryHandler) Create(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apierrors.ErrorResponse{Error: "Invalid token"})
	}

	var req CreateItineraryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body", "")
	}

	itinerary, err := h.itineraryService.Create(c.Request().Context(), user.ID, service.CreateItineraryInput{
		Title:              req.Title,
		Destination:        req.Destination,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		BudgetRange:        req.BudgetRange,
		Interests:          req.Interests,
		DaysPlan:           req.DaysPlan,
		DaysCount:          req.DaysCount,
		IsAIGenerated:      req.IsAIGenerated,
		EstimatedTotalCost: req.EstimatedTotalCost,
		Notes:              req.Notes,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"itinerary": itinerary})
}

// Update godoc
// @Summary Update allow-listed itinerary fields
// @Tags itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Param request body UpdateItineraryRequest true "Fields to change"
// @Success 200 {object} map[string]model.Itinerary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /itineraries/{id} [put]
func (h *ItineraryHandler) Update(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apierrors.ErrorResponse{Error: "Invalid token"})
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainError(apierrors.ErrItineraryNotFound)
	}

	var req UpdateItineraryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body", "")
	}

	itinerary, err := h.itineraryService.Update(c.Request().Context(), user.ID, id, service.UpdateItineraryInput{
		Title:              req.Title,
		Destination:        req.Destination,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		BudgetRange:        req.BudgetRange,
		Interests:          req.Interests,
		DaysPlan:           req.DaysPlan,
		DaysCount:          req.DaysCount,
		EstimatedTotalCost: req.EstimatedTotalCost,
		Notes:              req.Notes,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"itinerary": itinerary})
}

// Delete godoc
// @Summary Delete an itinerary
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /itineraries/{id} [delete]
func (h *ItineraryHandler) Delete(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apierrors.ErrorResponse{Error: "Invalid token"})
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainError(apierrors.ErrItineraryNotFound)
	}

	if err := h.itineraryService.Delete(c.Request().Context(), user.ID, id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
