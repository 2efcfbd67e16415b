package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Budget tiers accepted on itineraries and generation requests.
const (
	BudgetTierBudget      = "budget"
	BudgetTierModerate    = "moderate"
	BudgetTierComfortable = "comfortable"
	BudgetTierLuxury      = "luxury"
)

// Itinerary is a user-owned travel plan with its day-by-day sequence
// denormalized into a single jsonb column. Days and activities live and
// die with the parent record.
type Itinerary struct {
	ID                 uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Title              string     `json:"title" gorm:"size:255;not null"`
	Destination        string     `json:"destination" gorm:"size:255;not null"`
	StartDate          *string    `json:"start_date" gorm:"type:date"`
	EndDate            *string    `json:"end_date" gorm:"type:date"`
	BudgetRange        string     `json:"budget_range" gorm:"size:50"`
	Interests          StringList `json:"interests" gorm:"type:jsonb"`
	DaysPlan           DayPlans   `json:"days_plan" gorm:"type:jsonb"`
	DaysCount          int        `json:"days_count" gorm:"default:1"`
	IsAIGenerated      bool       `json:"is_ai_generated" gorm:"default:false"`
	EstimatedTotalCost *float64   `json:"estimated_total_cost"`
	Notes              string     `json:"notes" gorm:"type:text"`
	CreatedAt          time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Itinerary) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Activity is one entry in a day's ordered schedule. Time and cost are
// free-form ("09:00", "Free", "$10-20").
type Activity struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
	Location string `json:"location"`
	Cost     string `json:"cost"`
}

// DayPlan is one day's ordered activities, meal suggestions, tips and
// estimated cost. Order is meaningful and preserved exactly as submitted.
type DayPlan struct {
	Title         string     `json:"title"`
	Activities    []Activity `json:"activities"`
	Meals         []string   `json:"meals"`
	Tips          []string   `json:"tips"`
	EstimatedCost float64    `json:"estimated_cost"`
}

// ItineraryDraft is a generated plan returned to the client. It is never
// persisted by the generation path; saving it is a separate, explicit
// create call so the traveler can edit or discard it first.
type ItineraryDraft struct {
	Title              string    `json:"title"`
	Overview           string    `json:"overview"`
	EstimatedTotalCost float64   `json:"estimated_total_cost"`
	Days               []DayPlan `json:"days"`
	TravelTips         []string  `json:"travel_tips"`
}
