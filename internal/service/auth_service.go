package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"notesapi/internal/auth"
	apperrors "notesapi/internal/errors"
	"notesapi/internal/model"
	"notesapi/internal/repository"
)

const bcryptCost = 10

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (accessToken string, user *model.User, err error)
	// Verify checks signature, expiry and revocation of a bearer token.
	Verify(ctx context.Context, token string) (*auth.Claims, error)
	ResolveIdentity(ctx context.Context, token string) (uint, error)
	// Logout revokes the token described by claims until it expires.
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	denylist   auth.Denylist
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, denylist auth.Denylist) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		denylist:   denylist,
	}
}

// Register creates a new user with hashed password. Input is validated
// before any query runs.
func (s *authService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.Validation("email and password are required")
	}
	if len(email) > 120 {
		return nil, apperrors.Validation("email is too long")
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Persistence("check user existence", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, apperrors.Persistence("create user", err)
	}

	return user, nil
}

// Authenticate verifies credentials and issues an access token.
func (s *authService) Authenticate(ctx context.Context, email, password string) (string, *model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, apperrors.Validation("email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, apperrors.Persistence("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, user, nil
}

func (s *authService) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, apperrors.ErrInvalidToken
	}
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil || revoked {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) ResolveIdentity(ctx context.Context, token string) (uint, error) {
	claims, err := s.Verify(ctx, token)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.ErrInvalidToken
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.TTL(time.Now())); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrRevocationUnavailable, err)
	}
	return nil
}
