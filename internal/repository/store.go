package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle.
type Store interface {
	Users() UserRepository
	Notes() NoteRepository
	Tags() TagRepository
	// WithTransaction runs fn against repositories bound to a single
	// transaction. Returning an error from fn rolls everything back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type store struct {
	db *gorm.DB
}

// NewStore creates a GORM-backed store.
func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Users() UserRepository { return &userRepository{db: s.db} }

func (s *store) Notes() NoteRepository { return &noteRepository{db: s.db} }

func (s *store) Tags() TagRepository { return &tagRepository{db: s.db} }

// WithTransaction executes a function within a database transaction.
func (s *store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &store{db: tx})
	})
}
