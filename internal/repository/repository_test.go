package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"notesapi/internal/db"
	"notesapi/internal/model"
)

func newTestStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()
	gdb, err := db.Open("sqlite://:memory:", nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb, false))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewStore(gdb), gdb
}

func createUser(t *testing.T, s Store, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, PasswordHash: "hash", IsActive: true}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func createNote(t *testing.T, s Store, userID uint, title string, tags ...string) *model.Note {
	t.Helper()
	ctx := context.Background()
	n := &model.Note{Title: title, Content: "body of " + title, UserID: userID}
	require.NoError(t, s.Notes().Create(ctx, n))
	resolved, err := s.Tags().FindOrCreate(ctx, tags)
	require.NoError(t, err)
	ids := make([]uint, len(resolved))
	for i, tag := range resolved {
		ids[i] = tag.ID
	}
	require.NoError(t, s.Notes().ReplaceTags(ctx, n.ID, ids))
	return n
}

func tagNames(n model.Note) []string {
	names := make([]string, len(n.Tags))
	for i, tag := range n.Tags {
		names[i] = tag.Name
	}
	return names
}

func TestUserRepository_FindByEmail(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "a@b.com")

	found, err := s.Users().FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.True(t, found.IsActive)

	_, err = s.Users().FindByEmail(ctx, "missing@b.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_EmailIsUnique(t *testing.T) {
	s, _ := newTestStore(t)
	createUser(t, s, "a@b.com")

	err := s.Users().Create(context.Background(), &model.User{Email: "a@b.com", PasswordHash: "x"})
	assert.Error(t, err)
}

func TestTagRepository_FindOrCreateIsIdempotent(t *testing.T) {
	s, gdb := newTestStore(t)
	ctx := context.Background()

	first, err := s.Tags().FindOrCreate(ctx, []string{"x", "y"})
	require.NoError(t, err)
	second, err := s.Tags().FindOrCreate(ctx, []string{"y", "x"})
	require.NoError(t, err)

	assert.Equal(t, first[0].ID, second[1].ID)
	assert.Equal(t, first[1].ID, second[0].ID)

	var count int64
	require.NoError(t, gdb.Model(&model.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestNoteRepository_SharedTagHasOneRow(t *testing.T) {
	s, gdb := newTestStore(t)
	a := createUser(t, s, "a@b.com")
	b := createUser(t, s, "b@b.com")

	createNote(t, s, a.ID, "first", "work")
	createNote(t, s, b.ID, "second", "work")

	var tags, links int64
	require.NoError(t, gdb.Model(&model.Tag{}).Count(&tags).Error)
	require.NoError(t, gdb.Model(&model.NoteTag{}).Count(&links).Error)
	assert.EqualValues(t, 1, tags)
	assert.EqualValues(t, 2, links)
}

func TestNoteRepository_FindByIDAndUserScopesOwner(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a@b.com")
	b := createUser(t, s, "b@b.com")
	n := createNote(t, s, a.ID, "private")

	found, err := s.Notes().FindByIDAndUser(ctx, n.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", found.Title)
	assert.False(t, found.CreatedAt.IsZero())

	_, err = s.Notes().FindByIDAndUser(ctx, n.ID, b.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNoteRepository_ListByUserAndLoadTags(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a@b.com")
	b := createUser(t, s, "b@b.com")
	createNote(t, s, a.ID, "one", "x", "y")
	createNote(t, s, a.ID, "two")
	createNote(t, s, b.ID, "other", "x")

	notes, err := s.Notes().ListByUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.NoError(t, s.Notes().LoadTags(ctx, notes))

	assert.ElementsMatch(t, []string{"x", "y"}, tagNames(notes[0]))
	assert.NotNil(t, notes[1].Tags)
	assert.Empty(t, notes[1].Tags)
}

func TestNoteRepository_ReplaceTags(t *testing.T) {
	s, gdb := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a@b.com")
	n := createNote(t, s, a.ID, "note", "x")

	y, err := s.Tags().FindOrCreate(ctx, []string{"y"})
	require.NoError(t, err)
	require.NoError(t, s.Notes().ReplaceTags(ctx, n.ID, []uint{y[0].ID}))

	notes := []model.Note{*n}
	require.NoError(t, s.Notes().LoadTags(ctx, notes))
	assert.Equal(t, []string{"y"}, tagNames(notes[0]))

	_, err = s.Tags().FindByName(ctx, "x")
	assert.NoError(t, err, "unreferenced tags stay")

	require.NoError(t, s.Notes().ReplaceTags(ctx, n.ID, nil))
	var links int64
	require.NoError(t, gdb.Model(&model.NoteTag{}).Count(&links).Error)
	assert.Zero(t, links)
}

func TestNoteRepository_ListByTagSpansOwners(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a@b.com")
	b := createUser(t, s, "b@b.com")
	createNote(t, s, a.ID, "mine", "shared")
	createNote(t, s, b.ID, "theirs", "shared")
	createNote(t, s, a.ID, "untagged")

	tag, err := s.Tags().FindByName(ctx, "shared")
	require.NoError(t, err)

	notes, err := s.Notes().ListByTag(ctx, tag.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "mine", notes[0].Title)
	assert.Equal(t, "theirs", notes[1].Title)
}

func TestNoteRepository_UpdateFieldsKeepsCreatedAt(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a@b.com")
	n := createNote(t, s, a.ID, "before")

	before, err := s.Notes().FindByIDAndUser(ctx, n.ID, a.ID)
	require.NoError(t, err)

	require.NoError(t, s.Notes().UpdateFields(ctx, n, map[string]interface{}{"title": "after"}))

	after, err := s.Notes().FindByIDAndUser(ctx, n.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", after.Title)
	assert.Equal(t, before.Content, after.Content)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
}

func TestNoteRepository_DeleteRemovesAssociationsOnly(t *testing.T) {
	s, gdb := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a@b.com")
	n := createNote(t, s, a.ID, "doomed", "x")

	require.NoError(t, s.Notes().Delete(ctx, n))

	_, err := s.Notes().FindByIDAndUser(ctx, n.ID, a.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var links int64
	require.NoError(t, gdb.Model(&model.NoteTag{}).Count(&links).Error)
	assert.Zero(t, links)

	_, err = s.Tags().FindByName(ctx, "x")
	assert.NoError(t, err)

	assert.ErrorIs(t, s.Notes().Delete(ctx, n), gorm.ErrRecordNotFound)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	s, gdb := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a@b.com")
	b := createUser(t, s, "b@b.com")
	createNote(t, s, a.ID, "a1", "shared", "only-a")
	createNote(t, s, a.ID, "a2", "shared")
	kept := createNote(t, s, b.ID, "b1", "shared")

	err := s.WithTransaction(ctx, func(ctx context.Context, tx Store) error {
		return tx.Users().Delete(ctx, a.ID)
	})
	require.NoError(t, err)

	_, err = s.Users().FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var notes, links, tags int64
	require.NoError(t, gdb.Model(&model.Note{}).Count(&notes).Error)
	require.NoError(t, gdb.Model(&model.NoteTag{}).Count(&links).Error)
	require.NoError(t, gdb.Model(&model.Tag{}).Count(&tags).Error)
	assert.EqualValues(t, 1, notes)
	assert.EqualValues(t, 1, links)
	assert.EqualValues(t, 2, tags)

	remaining := []model.Note{*kept}
	require.NoError(t, s.Notes().LoadTags(ctx, remaining))
	assert.Equal(t, []string{"shared"}, tagNames(remaining[0]))

	assert.ErrorIs(t, s.Users().Delete(ctx, a.ID), gorm.ErrRecordNotFound)
}

func TestStore_WithTransactionRollsBack(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a@b.com")
	boom := errors.New("boom")

	err := s.WithTransaction(ctx, func(ctx context.Context, tx Store) error {
		if err := tx.Notes().Create(ctx, &model.Note{Title: "t", Content: "c", UserID: a.ID}); err != nil {
			return err
		}
		if _, err := tx.Tags().FindOrCreate(ctx, []string{"ghost"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	notes, err := s.Notes().ListByUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
	_, err = s.Tags().FindByName(ctx, "ghost")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
