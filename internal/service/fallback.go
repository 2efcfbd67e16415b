package service

import (
	"fmt"

	"wayfarer/internal/model"
)

// Per-day cost tiers for the synthetic generator.
const (
	fallbackCostBudget  = 50
	fallbackCostDefault = 120
	fallbackCostLuxury  = 300
	fallbackDuration    = 5
)

var fallbackTimes = []string{"09:00", "11:00", "13:00", "15:00", "18:00"}

var fallbackActivities = []model.Activity{
	{Activity: "Visit the main historical district", Location: "Old Town Center", Cost: "Free"},
	{Activity: "Explore local market", Location: "Central Market", Cost: "$10-20"},
	{Activity: "Museum visit", Location: "National Museum", Cost: "$15"},
	{Activity: "Walking tour of landmarks", Location: "City Center", Cost: "$25"},
	{Activity: "Local cuisine food tour", Location: "Food District", Cost: "$40"},
	{Activity: "Sunset viewpoint", Location: "Panorama Point", Cost: "Free"},
	{Activity: "Traditional performance", Location: "Cultural Center", Cost: "$30"},
	{Activity: "Day trip to nearby attraction", Location: "Surrounding Area", Cost: "$50"},
}

// FallbackItinerary synthesizes a deterministic draft used whenever the
// completion API is unconfigured, unreachable or returns unusable output.
// Identical inputs always produce identical output; the day index offsets
// the activity pool so consecutive days differ.
func FallbackItinerary(destination string, duration int, budgetRange string, interests []string) model.ItineraryDraft {
	if duration <= 0 {
		duration = fallbackDuration
	}

	var perDayCost float64
	switch budgetRange {
	case model.BudgetTierBudget:
		perDayCost = fallbackCostBudget
	case model.BudgetTierLuxury:
		perDayCost = fallbackCostLuxury
	default:
		perDayCost = fallbackCostDefault
	}

	days := make([]model.DayPlan, 0, duration)
	for i := 1; i <= duration; i++ {
		activities := make([]model.Activity, 0, len(fallbackTimes))
		for j, slot := range fallbackTimes {
			activity := fallbackActivities[(i+j)%len(fallbackActivities)]
			activity.Time = slot
			activities = append(activities, activity)
		}

		days = append(days, model.DayPlan{
			Title:      fmt.Sprintf("Day %d: Exploring %s", i, destination),
			Activities: activities,
			Meals: []string{
				"Local breakfast spot",
				"Traditional lunch restaurant",
				"Dinner at popular eatery",
			},
			Tips: []string{
				fmt.Sprintf("Book attractions in advance for day %d", i),
				"Carry comfortable walking shoes",
			},
			EstimatedCost: perDayCost,
		})
	}

	var totalCost float64
	for _, day := range days {
		totalCost += day.EstimatedCost
	}

	return model.ItineraryDraft{
		Title: fmt.Sprintf("%d-Day Adventure in %s", duration, destination),
		Overview: fmt.Sprintf(
			"Experience the best of %s with this carefully crafted %d-day itinerary. From cultural landmarks to local cuisine, this trip covers the essential experiences.",
			destination, duration),
		EstimatedTotalCost: totalCost,
		Days:               days,
		TravelTips: []string{
			fmt.Sprintf("Best time to visit %s is during shoulder season for fewer crowds", destination),
			"Download offline maps before your trip",
			"Learn a few basic phrases in the local language",
			"Keep copies of important documents",
			"Check visa requirements well in advance",
		},
	}
}
