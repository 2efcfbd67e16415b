package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wayfarer/internal/auth"
	apierrors "wayfarer/internal/errors"
	"wayfarer/internal/model"
	"wayfarer/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and preference updates.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs model.JSONMap) (model.JSONMap, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{userRepo: userRepo, jwtService: jwtService}
}

// Register creates a user with a hashed password and returns it with a
// fresh bearer token. Emails are stored lowercased so lookups are
// case-insensitive.
func (s *authService) Register(ctx context.Context, email, password, name string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", apierrors.ErrEmailPasswordRequired
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apierrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		Preferences:  model.JSONMap{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.Issue(user.ID.String())
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Login authenticates a user and returns it with a fresh bearer token.
// Unknown email and wrong password collapse into the same error.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", apierrors.ErrEmailPasswordRequired
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apierrors.ErrStoreUnavailable) {
			return nil, "", err
		}
		return nil, "", apierrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apierrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID.String())
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// UpdatePreferences replaces the user's preference document.
func (s *authService) UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs model.JSONMap) (model.JSONMap, error) {
	if prefs == nil {
		prefs = model.JSONMap{}
	}
	user, err := s.userRepo.UpdatePreferences(ctx, userID, prefs)
	if err != nil {
		if errors.Is(err, apierrors.ErrStoreUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return user.Preferences, nil
}
