package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wayfarer/internal/auth"
	apierrors "wayfarer/internal/errors"
	"wayfarer/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.JSONMap) (*model.User, error) {
	args := m.Called(ctx, id, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newTestAuthService(repo *MockUserRepository) AuthService {
	return NewAuthService(repo, auth.NewJWTService("test-secret"))
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		displayName   string
		setupMock     func(*MockUserRepository)
		expectedError error
		expectedName  string
		expectedEmail string
	}{
		{
			name:        "successful registration",
			email:       "Test@Example.com",
			password:    "password123",
			displayName: "Test User",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedName:  "Test User",
			expectedEmail: "test@example.com",
		},
		{
			name:     "name defaults to email local part",
			email:    "sam@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "sam@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedName:  "sam",
			expectedEmail: "sam@example.com",
		},
		{
			name:     "email already registered",
			email:    "existing@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").
					Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apierrors.ErrEmailTaken,
		},
		{
			name:          "missing password",
			email:         "test@example.com",
			password:      "",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apierrors.ErrEmailPasswordRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newTestAuthService(mockRepo)
			user, token, err := service.Register(context.Background(), tt.email, tt.password, tt.displayName)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.expectedEmail, user.Email)
				assert.Equal(t, tt.expectedName, user.Name)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotNil(t, user.Preferences)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	storedUser := &model.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: string(hashed),
		Name:         "Test User",
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(storedUser, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "nope",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(storedUser, nil)
			},
			expectedError: apierrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apierrors.ErrInvalidCredentials,
		},
		{
			name:     "store unavailable surfaces as such",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, apierrors.ErrStoreUnavailable)
			},
			expectedError: apierrors.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newTestAuthService(mockRepo)
			user, token, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, storedUser.Email, user.Email)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginTokenIsAccepted(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	storedUser := &model.User{ID: uuid.New(), Email: "test@example.com", PasswordHash: string(hashed)}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(storedUser, nil)

	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(mockRepo, jwtService)

	_, token, err := service.Login(context.Background(), "test@example.com", "password123")
	assert.NoError(t, err)

	userID, err := jwtService.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, storedUser.ID.String(), userID)
}

func TestAuthService_UpdatePreferences(t *testing.T) {
	userID := uuid.New()
	prefs := model.JSONMap{"currency": "EUR", "pace": "slow"}

	mockRepo := new(MockUserRepository)
	mockRepo.On("UpdatePreferences", mock.Anything, userID, prefs).
		Return(&model.User{ID: userID, Preferences: prefs}, nil)

	service := newTestAuthService(mockRepo)
	got, err := service.UpdatePreferences(context.Background(), userID, prefs)
	assert.NoError(t, err)
	assert.Equal(t, prefs, got)

	mockRepo.AssertExpectations(t)
}
