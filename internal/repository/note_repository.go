package repository

import (
	"context"

	"gorm.io/gorm"

	"notesapi/internal/model"
)

// NoteRepository defines note persistence operations. Every lookup of a
// single note is scoped to its owner in the same query.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Note, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Note, error)
	// ListByTag returns every note carrying the tag, regardless of owner.
	ListByTag(ctx context.Context, tagID uint) ([]model.Note, error)
	UpdateFields(ctx context.Context, note *model.Note, fields map[string]interface{}) error
	Delete(ctx context.Context, note *model.Note) error
	// ReplaceTags clears every association of the note and adds tagIDs.
	ReplaceTags(ctx context.Context, noteID uint, tagIDs []uint) error
	// LoadTags fills the Tags view of each note through note_tags.
	LoadTags(ctx context.Context, notes []model.Note) error
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Omit("NoteTags").Create(note).Error
}

func (r *noteRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) ListByUser(ctx context.Context, userID uint) ([]model.Note, error) {
	notes := []model.Note{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) ListByTag(ctx context.Context, tagID uint) ([]model.Note, error) {
	notes := []model.Note{}
	if err := r.db.WithContext(ctx).
		Select("notes.*").
		Joins("JOIN note_tags ON note_tags.note_id = notes.id").
		Where("note_tags.tag_id = ?", tagID).
		Order("notes.id").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) UpdateFields(ctx context.Context, note *model.Note, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ? AND user_id = ?", note.ID, note.UserID).
		Updates(fields).Error
}

func (r *noteRepository) Delete(ctx context.Context, note *model.Note) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("note_id = ?", note.ID).Delete(&model.NoteTag{}).Error; err != nil {
		return err
	}
	res := db.Where("id = ? AND user_id = ?", note.ID, note.UserID).Delete(&model.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *noteRepository) ReplaceTags(ctx context.Context, noteID uint, tagIDs []uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("note_id = ?", noteID).Delete(&model.NoteTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]model.NoteTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		links = append(links, model.NoteTag{NoteID: noteID, TagID: id})
	}
	return db.Create(&links).Error
}

type noteTagRow struct {
	NoteID uint
	ID     uint
	Name   string
}

func (r *noteRepository) LoadTags(ctx context.Context, notes []model.Note) error {
	if len(notes) == 0 {
		return nil
	}
	ids := make([]uint, len(notes))
	for i := range notes {
		ids[i] = notes[i].ID
		notes[i].Tags = []model.Tag{}
	}

	var rows []noteTagRow
	if err := r.db.WithContext(ctx).
		Table("tags").
		Select("note_tags.note_id AS note_id, tags.id AS id, tags.name AS name").
		Joins("JOIN note_tags ON note_tags.tag_id = tags.id").
		Where("note_tags.note_id IN ?", ids).
		Order("tags.id").
		Scan(&rows).Error; err != nil {
		return err
	}

	index := make(map[uint]int, len(notes))
	for i := range notes {
		index[notes[i].ID] = i
	}
	for _, row := range rows {
		if i, ok := index[row.NoteID]; ok {
			notes[i].Tags = append(notes[i].Tags, model.Tag{ID: row.ID, Name: row.Name})
		}
	}
	return nil
}
