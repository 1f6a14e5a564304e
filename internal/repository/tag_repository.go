package repository

import (
	"context"

	"gorm.io/gorm"

	"notesapi/internal/model"
)

// TagRepository defines tag persistence operations.
type TagRepository interface {
	List(ctx context.Context) ([]model.Tag, error)
	FindByName(ctx context.Context, name string) (*model.Tag, error)
	// FindOrCreate resolves each name to exactly one tag row, creating the
	// missing ones. The result follows the order of names.
	FindOrCreate(ctx context.Context, names []string) ([]model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context) ([]model.Tag, error) {
	tags := []model.Tag{}
	if err := r.db.WithContext(ctx).Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindOrCreate(ctx context.Context, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		var tag model.Tag
		if err := r.db.WithContext(ctx).
			Omit("NoteTags").
			Where(model.Tag{Name: name}).
			FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
