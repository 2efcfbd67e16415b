package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wayfarer/internal/config"
	"wayfarer/internal/db"
	"wayfarer/internal/model"
	"wayfarer/internal/repository"
	"wayfarer/internal/service"
)

const (
	demoEmail    = "demo@wayfarer.local"
	demoPassword = "wanderlust"
	demoName     = "Demo Traveler"
)

func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	var creds *db.CredentialCache
	if cfg.DBAuthURL != "" {
		creds = db.NewCredentialCache(db.HTTPFetch(cfg.DBAuthURL, cfg.DBAuthToken))
	}

	ctx := context.Background()
	gormDB, err := db.NewPostgres(ctx, cfg.DatabaseURL, cfg.TablePrefix, creds)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Itinerary{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	itineraryRepo := repository.NewItineraryRepository(gormDB)

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	switch {
	case err == nil:
		log.Printf("Demo user already exists: %s", user.ID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
		if err != nil {
			log.Fatalf("Failed to hash demo password: %v", err)
		}
		user = &model.User{
			Email:        demoEmail,
			PasswordHash: string(hash),
			Name:         demoName,
			Preferences:  model.JSONMap{"currency": "USD"},
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %s (%s / %s)", user.ID, demoEmail, demoPassword)
	default:
		log.Fatalf("Failed to look up demo user: %v", err)
	}

	existing, err := itineraryRepo.ListByUser(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to list itineraries: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Demo user already has %d itineraries, nothing to do", len(existing))
		return
	}

	draft := service.FallbackItinerary("Lisbon", 3, model.BudgetTierModerate, []string{"food", "history"})
	total := draft.EstimatedTotalCost
	itinerary := &model.Itinerary{
		UserID:             user.ID,
		Title:              draft.Title,
		Destination:        "Lisbon",
		BudgetRange:        model.BudgetTierModerate,
		Interests:          model.StringList{"food", "history"},
		DaysPlan:           model.DayPlans(draft.Days),
		DaysCount:          len(draft.Days),
		IsAIGenerated:      false,
		EstimatedTotalCost: &total,
		Notes:              "Seeded sample trip",
	}
	if err := itineraryRepo.Create(ctx, itinerary); err != nil {
		log.Fatalf("Failed to create sample itinerary: %v", err)
	}
	log.Printf("Created sample itinerary %s", itinerary.ID)
}
