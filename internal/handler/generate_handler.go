package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"wayfarer/internal/auth"
	apierrors "wayfarer/internal/errors"
	"wayfarer/internal/service"
)

// GenerateHandler handles AI itinerary drafting.
type GenerateHandler struct {
	generationService service.GenerationService
}

// NewGenerateHandler creates a new generation handler.
func NewGenerateHandler(generationService service.GenerationService) *GenerateHandler {
	return &GenerateHandler{generationService: generationService}
}

// GenerateItineraryRequest represents a draft generation request.
type GenerateItineraryRequest struct {
	Destination     string   `json:"destination"`
	Duration        int      `json:"duration"`
	BudgetRange     string   `json:"budget_range"`
	Interests       []string `json:"interests"`
	TravelStyle     string   `json:"travel_style"`
	SpecialRequests string   `json:"special_requests"`
}

// Generate godoc
// @Summary Draft a day-by-day itinerary
// @Description Returns a draft only; saving it is a separate create call.
// @Tags generation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateItineraryRequest true "Trip parameters"
// @Success 200 {object} map[string]model.ItineraryDraft
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /generate-itinerary [post]
func (h *GenerateHandler) Generate(c echo.Context) error {
	if _, ok := auth.CurrentUser(c); !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apierrors.ErrorResponse{Error: "Invalid token"})
	}

	var req GenerateItineraryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body", "")
	}

	outcome, err := h.generationService.Generate(c.Request().Context(), service.GenerateRequest{
		Destination:     req.Destination,
		Duration:        req.Duration,
		BudgetRange:     req.BudgetRange,
		Interests:       req.Interests,
		TravelStyle:     req.TravelStyle,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return domainError(err)
	}

	log.Printf("generation: served %s draft for %q", outcome.Source, req.Destination)
	return c.JSON(http.StatusOK, echo.Map{"itinerary": outcome.Draft})
}
