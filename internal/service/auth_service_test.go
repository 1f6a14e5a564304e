package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"notesapi/internal/auth"
	"notesapi/internal/cache"
	apperrors "notesapi/internal/errors"
	"notesapi/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
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

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDenylist is a mock implementation of auth.Denylist.
type MockDenylist struct {
	mock.Mock
}

func (m *MockDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "user already exists",
			email:    "existing@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
		{
			name:     "unique index race",
			email:    "race@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
		{
			name:          "missing email never touches the store",
			email:         "  ",
			password:      "password123",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:          "missing password never touches the store",
			email:         "test@example.com",
			password:      "",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			service := NewAuthService(mockRepo, jwtService, new(MockDenylist))
			user, err := service.Register(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.True(t, user.IsActive)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &model.User{ID: 9, Email: "test@example.com", PasswordHash: string(hashedPassword), IsActive: true}

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
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(stored, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:          "missing fields",
			email:         "",
			password:      "",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			service := NewAuthService(mockRepo, jwtService, new(MockDenylist))

			token, user, err := service.Authenticate(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, stored.ID, user.ID)

				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, stored.ID, claims.UserID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResolveIdentity(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	token, err := jwtService.GenerateAccessToken(5)
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		denylist := new(MockDenylist)
		denylist.On("IsRevoked", mock.Anything, claims.ID).Return(false, nil)
		service := NewAuthService(new(MockUserRepository), jwtService, denylist)

		userID, err := service.ResolveIdentity(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, uint(5), userID)
		denylist.AssertExpectations(t)
	})

	t.Run("revoked token", func(t *testing.T) {
		denylist := new(MockDenylist)
		denylist.On("IsRevoked", mock.Anything, claims.ID).Return(true, nil)
		service := NewAuthService(new(MockUserRepository), jwtService, denylist)

		_, err := service.ResolveIdentity(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("malformed and missing tokens", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, new(MockDenylist))
		for _, bad := range []string{"", "not-a-jwt"} {
			_, err := service.ResolveIdentity(context.Background(), bad)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		}
	})

	t.Run("token signed with another key", func(t *testing.T) {
		foreign, err := auth.NewJWTService("other-secret", time.Hour).GenerateAccessToken(5)
		require.NoError(t, err)
		service := NewAuthService(new(MockUserRepository), jwtService, new(MockDenylist))

		_, err = service.ResolveIdentity(context.Background(), foreign)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	token, err := jwtService.GenerateAccessToken(5)
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)

	denylist := new(MockDenylist)
	denylist.On("Revoke", mock.Anything, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 59*time.Minute && ttl <= time.Hour
	})).Return(nil)
	service := NewAuthService(new(MockUserRepository), jwtService, denylist)

	require.NoError(t, service.Logout(context.Background(), claims))
	assert.ErrorIs(t, service.Logout(context.Background(), nil), apperrors.ErrUnauthorized)
	denylist.AssertExpectations(t)
}

func TestAuthService_LogoutFailsWhenRevocationCannotBeStored(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	token, err := jwtService.GenerateAccessToken(5)
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)

	denylist := new(MockDenylist)
	denylist.On("Revoke", mock.Anything, claims.ID, mock.Anything).Return(cache.ErrUnavailable)
	service := NewAuthService(new(MockUserRepository), jwtService, denylist)

	err = service.Logout(context.Background(), claims)
	assert.ErrorIs(t, err, apperrors.ErrRevocationUnavailable)
	assert.ErrorIs(t, err, cache.ErrUnavailable)
	denylist.AssertExpectations(t)
}
