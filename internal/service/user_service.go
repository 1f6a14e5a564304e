package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"notesapi/internal/cache"
	apperrors "notesapi/internal/errors"
	"notesapi/internal/model"
	"notesapi/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes profile lookups and the admin-only cascade delete.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
	DeleteUserByEmail(ctx context.Context, email string) error
}

type userService struct {
	store repository.Store
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(store repository.Store, cache *cache.Client) UserService {
	return &userService{store: store, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Persistence("get user", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// DeleteUser removes the user, its notes and their tag associations in one
// transaction. Tags stay, other users may reference them.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Persistence("delete user", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *userService) DeleteUserByEmail(ctx context.Context, email string) error {
	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Persistence("find user", err)
	}
	return s.DeleteUser(ctx, user.ID)
}
