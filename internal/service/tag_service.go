package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "notesapi/internal/errors"
	"notesapi/internal/model"
	"notesapi/internal/repository"
)

// TagService handles tag operations.
type TagService interface {
	ListTags(ctx context.Context) ([]model.Tag, error)
	NotesByTag(ctx context.Context, userID uint, name string) ([]model.Note, error)
}

type tagService struct {
	store repository.Store
}

// NewTagService creates a new tag service.
func NewTagService(store repository.Store) TagService {
	return &tagService{store: store}
}

// ListTags returns every tag of every user.
func (s *tagService) ListTags(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.store.Tags().List(ctx)
	if err != nil {
		return nil, apperrors.Persistence("list tags", err)
	}
	return tags, nil
}

// NotesByTag returns the caller's notes carrying the named tag. The tag's
// notes are fetched for all owners and filtered here.
func (s *tagService) NotesByTag(ctx context.Context, userID uint, name string) ([]model.Note, error) {
	tag, err := s.store.Tags().FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, apperrors.Persistence("find tag", err)
	}

	all, err := s.store.Notes().ListByTag(ctx, tag.ID)
	if err != nil {
		return nil, apperrors.Persistence("list notes by tag", err)
	}

	owned := make([]model.Note, 0, len(all))
	for _, note := range all {
		if note.UserID == userID {
			owned = append(owned, note)
		}
	}
	if err := s.store.Notes().LoadTags(ctx, owned); err != nil {
		return nil, apperrors.Persistence("load tags", err)
	}
	return owned, nil
}
