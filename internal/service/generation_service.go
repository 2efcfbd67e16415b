package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	apierrors "wayfarer/internal/errors"
	"wayfarer/internal/model"
)

const generationSystemPrompt = "You are an expert travel planner. Always respond with valid JSON only, no markdown."

// DraftSource records which path produced a generation outcome.
type DraftSource string

const (
	// DraftSourceModel marks a draft parsed from the completion API.
	DraftSourceModel DraftSource = "model"
	// DraftSourceFallback marks a draft from the deterministic generator.
	DraftSourceFallback DraftSource = "fallback"
)

// GenerationOutcome is a draft plus its provenance. The client-facing
// response is identical for both sources; provenance exists for logging
// and tests.
type GenerationOutcome struct {
	Draft  model.ItineraryDraft
	Source DraftSource
}

// GenerateRequest carries the trip parameters for a draft.
type GenerateRequest struct {
	Destination     string
	Duration        int
	BudgetRange     string
	Interests       []string
	TravelStyle     string
	SpecialRequests string
}

// CompletionClient is the slice of the AI client the service needs.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// GenerationService drafts itineraries. Model-side failures are absorbed
// into the fallback generator; only a blank destination is a hard error.
type GenerationService interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerationOutcome, error)
}

type generationService struct {
	client CompletionClient
}

// NewGenerationService creates a generation service. A nil client means no
// completion API is configured and every request takes the fallback path
// without attempting a network call.
func NewGenerationService(client CompletionClient) GenerationService {
	return &generationService{client: client}
}

func (s *generationService) Generate(ctx context.Context, req GenerateRequest) (*GenerationOutcome, error) {
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Destination == "" {
		return nil, apierrors.ErrDestinationRequired
	}

	if req.Duration <= 0 {
		req.Duration = fallbackDuration
	}
	if req.BudgetRange == "" {
		req.BudgetRange = model.BudgetTierModerate
	}
	if req.TravelStyle == "" {
		req.TravelStyle = "balanced"
	}

	if s.client == nil {
		return s.fallback(req), nil
	}

	content, err := s.client.Complete(ctx, generationSystemPrompt, buildPrompt(req))
	if err != nil {
		log.Printf("generation: completion call failed, using fallback: %v", err)
		return s.fallback(req), nil
	}

	var draft model.ItineraryDraft
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &draft); err != nil {
		log.Printf("generation: unparsable completion output, using fallback: %v", err)
		return s.fallback(req), nil
	}

	return &GenerationOutcome{Draft: draft, Source: DraftSourceModel}, nil
}

func (s *generationService) fallback(req GenerateRequest) *GenerationOutcome {
	return &GenerationOutcome{
		Draft:  FallbackItinerary(req.Destination, req.Duration, req.BudgetRange, req.Interests),
		Source: DraftSourceFallback,
	}
}

var budgetDescriptions = map[string]string{
	model.BudgetTierBudget:      "$0-50 per day",
	model.BudgetTierModerate:    "$50-150 per day",
	model.BudgetTierComfortable: "$150-300 per day",
	model.BudgetTierLuxury:      "$300+ per day",
}

func buildPrompt(req GenerateRequest) string {
	budget, ok := budgetDescriptions[req.BudgetRange]
	if !ok {
		budget = budgetDescriptions[model.BudgetTierModerate]
	}

	interests := strings.Join(req.Interests, ", ")
	if interests == "" {
		interests = "general sightseeing"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed %d-day travel itinerary for %s.\n\n", req.Duration, req.Destination)
	fmt.Fprintf(&b, "Budget: %s\n", budget)
	fmt.Fprintf(&b, "Interests: %s\n", interests)
	fmt.Fprintf(&b, "Travel Style: %s\n", req.TravelStyle)
	if req.SpecialRequests != "" {
		fmt.Fprintf(&b, "Special Requests: %s\n", req.SpecialRequests)
	}
	b.WriteString(`
Generate a JSON response with this exact structure:
{
  "title": "Creative trip title",
  "overview": "Brief 2-3 sentence overview of the trip",
  "estimated_total_cost": number (total estimated cost in USD),
  "days": [
    {
      "title": "Day 1: Theme/Area",
      "activities": [
        {
          "time": "09:00",
          "activity": "Activity description",
          "location": "Specific location name",
          "cost": "estimated cost or Free"
        }
      ],
      "meals": ["Restaurant/food recommendation 1", "Restaurant 2"],
      "tips": ["Practical tip for this day"],
      "estimated_cost": number
    }
  ],
  "travel_tips": ["General tip 1", "General tip 2", "General tip 3"]
}

Make activities specific with real place names. Include 4-6 activities per day depending on travel style. Provide realistic cost estimates.`)
	return b.String()
}

// stripCodeFences removes markdown fences some models wrap around JSON
// despite the system prompt.
func stripCodeFences(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}
