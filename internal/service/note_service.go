package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "notesapi/internal/errors"
	"notesapi/internal/model"
	"notesapi/internal/repository"
)

// CreateNoteInput carries the fields of a new note.
type CreateNoteInput struct {
	Title   string
	Content string
	Tags    []string
}

// UpdateNoteInput carries a partial update. Empty Title or Content keep the
// stored value; a nil Tags keeps the associations, a non-nil one (even
// empty) replaces them.
type UpdateNoteInput struct {
	Title   string
	Content string
	Tags    []string
}

// NoteService handles note operations. Every method takes the caller's id
// and only ever touches notes owned by it.
type NoteService interface {
	ListNotes(ctx context.Context, userID uint) ([]model.Note, error)
	CreateNote(ctx context.Context, userID uint, in CreateNoteInput) (*model.Note, error)
	GetNote(ctx context.Context, userID, noteID uint) (*model.Note, error)
	UpdateNote(ctx context.Context, userID, noteID uint, in UpdateNoteInput) (*model.Note, error)
	DeleteNote(ctx context.Context, userID, noteID uint) error
}

type noteService struct {
	store repository.Store
}

// NewNoteService creates a new note service.
func NewNoteService(store repository.Store) NoteService {
	return &noteService{store: store}
}

func (s *noteService) ListNotes(ctx context.Context, userID uint) ([]model.Note, error) {
	notes, err := s.store.Notes().ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("list notes", err)
	}
	if err := s.store.Notes().LoadTags(ctx, notes); err != nil {
		return nil, apperrors.Persistence("load tags", err)
	}
	return notes, nil
}

// CreateNote stores the note and its tag associations atomically.
func (s *noteService) CreateNote(ctx context.Context, userID uint, in CreateNoteInput) (*model.Note, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, apperrors.Validation("title and content are required")
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLength {
		return nil, apperrors.Validation("title must be at most 100 characters")
	}
	names, err := normalizeTagNames(in.Tags)
	if err != nil {
		return nil, err
	}

	note := &model.Note{
		Title:   in.Title,
		Content: in.Content,
		UserID:  userID,
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := tx.Notes().Create(ctx, note); err != nil {
			return err
		}
		if err := attachTags(ctx, tx, note.ID, names); err != nil {
			return err
		}
		return loadOne(ctx, tx, note)
	})
	if err != nil {
		return nil, apperrors.Persistence("create note", err)
	}
	return note, nil
}

func (s *noteService) GetNote(ctx context.Context, userID, noteID uint) (*model.Note, error) {
	note, err := s.store.Notes().FindByIDAndUser(ctx, noteID, userID)
	if err != nil {
		return nil, noteLookupError("get note", err)
	}
	if err := loadOne(ctx, s.store, note); err != nil {
		return nil, apperrors.Persistence("load tags", err)
	}
	return note, nil
}

// UpdateNote applies a partial update; tags are replaced wholesale.
func (s *noteService) UpdateNote(ctx context.Context, userID, noteID uint, in UpdateNoteInput) (*model.Note, error) {
	if utf8.RuneCountInString(in.Title) > maxTitleLength {
		return nil, apperrors.Validation("title must be at most 100 characters")
	}
	var names []string
	if in.Tags != nil {
		var err error
		if names, err = normalizeTagNames(in.Tags); err != nil {
			return nil, err
		}
	}

	var note *model.Note
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		note, err = tx.Notes().FindByIDAndUser(ctx, noteID, userID)
		if err != nil {
			return err
		}

		fields := map[string]interface{}{}
		if strings.TrimSpace(in.Title) != "" {
			fields["title"] = in.Title
			note.Title = in.Title
		}
		if strings.TrimSpace(in.Content) != "" {
			fields["content"] = in.Content
			note.Content = in.Content
		}
		if err := tx.Notes().UpdateFields(ctx, note, fields); err != nil {
			return err
		}

		if in.Tags != nil {
			if err := attachTags(ctx, tx, note.ID, names); err != nil {
				return err
			}
		}
		return loadOne(ctx, tx, note)
	})
	if err != nil {
		return nil, noteLookupError("update note", err)
	}
	return note, nil
}

func (s *noteService) DeleteNote(ctx context.Context, userID, noteID uint) error {
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		note, err := tx.Notes().FindByIDAndUser(ctx, noteID, userID)
		if err != nil {
			return err
		}
		return tx.Notes().Delete(ctx, note)
	})
	if err != nil {
		return noteLookupError("delete note", err)
	}
	return nil
}

// attachTags resolves names with find-or-create and replaces the note's
// associations with them.
func attachTags(ctx context.Context, tx repository.Store, noteID uint, names []string) error {
	tags, err := tx.Tags().FindOrCreate(ctx, names)
	if err != nil {
		return err
	}
	ids := make([]uint, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}
	return tx.Notes().ReplaceTags(ctx, noteID, ids)
}

func loadOne(ctx context.Context, store repository.Store, note *model.Note) error {
	notes := []model.Note{*note}
	if err := store.Notes().LoadTags(ctx, notes); err != nil {
		return err
	}
	note.Tags = notes[0].Tags
	return nil
}

func noteLookupError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNoteNotFound
	}
	return apperrors.Persistence(op, err)
}
