package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"wayfarer/docs"
	"wayfarer/internal/ai"
	"wayfarer/internal/auth"
	"wayfarer/internal/cache"
	"wayfarer/internal/config"
	"wayfarer/internal/db"
	"wayfarer/internal/handler"
	"wayfarer/internal/model"
	"wayfarer/internal/repository"
	"wayfarer/internal/router"
	"wayfarer/internal/service"
)

// @title Wayfarer Travel Planner API
// @version 1.0
// @description Travel itinerary planner with AI-assisted drafting and JWT authentication.
// @host localhost:3001
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	// Optional federated store credentials for managed deployments.
	var creds *db.CredentialCache
	if cfg.DBAuthURL != "" {
		creds = db.NewCredentialCache(db.HTTPFetch(cfg.DBAuthURL, cfg.DBAuthToken))
	}

	// A missing store is not fatal: the server still answers health and
	// generation-without-persistence; protected store routes fail closed.
	gormDB, err := db.NewPostgres(context.Background(), cfg.DatabaseURL, cfg.TablePrefix, creds)
	if err != nil {
		log.Printf("database unavailable, store routes will return 503: %v", err)
		gormDB = nil
	}

	if gormDB != nil {
		if err := gormDB.AutoMigrate(&model.User{}, &model.Itinerary{}); err != nil {
			log.Fatalf("auto-migrate: %v", err)
		}
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	itineraryRepo := repository.NewItineraryRepository(gormDB)

	// Initialize auth and AI components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	var completion service.CompletionClient
	if cfg.OpenAIAPIKey != "" {
		completion = ai.NewClient(cfg.OpenAIAPIKey)
	} else {
		log.Println("no completion API key configured, drafts use the fallback generator")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	itineraryService := service.NewItineraryService(itineraryRepo, cacheClient)
	generationService := service.NewGenerationService(completion)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	itineraryHandler := handler.NewItineraryHandler(itineraryService)
	generateHandler := handler.NewGenerateHandler(generationService)
	healthHandler := handler.NewHealthHandler(gormDB, completion != nil)

	// Register routes
	router.Register(
		e,
		cfg,
		userRepo,
		authHandler,
		userHandler,
		itineraryHandler,
		generateHandler,
		healthHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
