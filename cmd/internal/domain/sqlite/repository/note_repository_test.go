package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"notesbackend/cmd/internal/domain/entity"
	"notesbackend/cmd/internal/domain/sqlite"
	"notesbackend/cmd/internal/domain/sqlite/repository"
	"notesbackend/cmd/internal/service"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.Open(sqlite.Options{
		URL:      filepath.Join(t.TempDir(), "notes.db"),
		LogLevel: log.OFF,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

func newNote(title string, createdAt time.Time) *entity.Note {
	return &entity.Note{Title: title, CreatedAt: createdAt, UpdatedAt: createdAt}
}

func TestNoteRepository_FindByIDAbsent(t *testing.T) {
	repo := repository.NewNoteRepository(openDB(t))

	note, err := repo.FindByID(42)
	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestNoteRepository_CreateAndFind(t *testing.T) {
	repo := repository.NewNoteRepository(openDB(t))
	now := time.Date(2024, 3, 1, 12, 0, 0, 123456000, time.UTC)
	content := "body"

	note := newNote("first", now)
	note.Content = &content
	require.NoError(t, repo.Create(note))
	assert.Equal(t, int64(1), note.ID)

	found, err := repo.FindByID(note.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "first", found.Title)
	require.NotNil(t, found.Content)
	assert.Equal(t, "body", *found.Content)
	assert.True(t, now.Equal(found.CreatedAt), "created_at %s", found.CreatedAt)
	assert.True(t, now.Equal(found.UpdatedAt), "updated_at %s", found.UpdatedAt)
}

func TestNoteRepository_NullContent(t *testing.T) {
	repo := repository.NewNoteRepository(openDB(t))

	note := newNote("no body", time.Now().UTC())
	require.NoError(t, repo.Create(note))

	found, err := repo.FindByID(note.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Nil(t, found.Content)
}

func TestNoteRepository_FindPageOrdersNewestFirst(t *testing.T) {
	repo := repository.NewNoteRepository(openDB(t))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Inserted out of order on purpose
	for _, offset := range []int{2, 0, 4, 1, 3} {
		title := base.Add(time.Duration(offset) * time.Minute).Format(time.Kitchen)
		require.NoError(t, repo.Create(newNote(title, base.Add(time.Duration(offset)*time.Minute))))
	}

	notes, err := repo.FindPage(0, 100)
	require.NoError(t, err)
	require.Len(t, notes, 5)
	for i := 1; i < len(notes); i++ {
		assert.True(t, notes[i-1].CreatedAt.After(notes[i].CreatedAt))
	}

	page, err := repo.FindPage(1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.True(t, base.Add(3*time.Minute).Equal(page[0].CreatedAt))
	assert.True(t, base.Add(2*time.Minute).Equal(page[1].CreatedAt))

	empty, err := repo.FindPage(10, 5)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	none, err := repo.FindPage(0, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNoteRepository_SaveAndDelete(t *testing.T) {
	repo := repository.NewNoteRepository(openDB(t))
	created := time.Date(2024, 5, 5, 5, 5, 5, 0, time.UTC)

	note := newNote("draft", created)
	require.NoError(t, repo.Create(note))

	note.Title = "final"
	note.UpdatedAt = created.Add(time.Hour)
	require.NoError(t, repo.Save(note))

	found, err := repo.FindByID(note.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "final", found.Title)
	assert.True(t, created.Equal(found.CreatedAt))
	assert.True(t, created.Add(time.Hour).Equal(found.UpdatedAt))

	require.NoError(t, repo.Delete(found))
	gone, err := repo.FindByID(note.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestNoteRepository_IDsAreNotReused(t *testing.T) {
	repo := repository.NewNoteRepository(openDB(t))
	now := time.Now().UTC()

	first := newNote("one", now)
	second := newNote("two", now)
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))
	require.NoError(t, repo.Delete(second))

	third := newNote("three", now)
	require.NoError(t, repo.Create(third))
	assert.Greater(t, third.ID, second.ID)
}

func TestNoteStore_SessionCommits(t *testing.T) {
	db := openDB(t)
	store := repository.NewNoteStore(db)

	err := store.Session(context.Background(), func(repo service.NoteRepository) error {
		return repo.Create(newNote("kept", time.Now().UTC()))
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&entity.Note{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNoteStore_SessionRollsBackOnError(t *testing.T) {
	db := openDB(t)
	store := repository.NewNoteStore(db)
	boom := errors.New("boom")

	err := store.Session(context.Background(), func(repo service.NoteRepository) error {
		if err := repo.Create(newNote("discarded", time.Now().UTC())); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&entity.Note{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNoteStore_SessionRollsBackOnPanic(t *testing.T) {
	db := openDB(t)
	store := repository.NewNoteStore(db)

	assert.Panics(t, func() {
		_ = store.Session(context.Background(), func(repo service.NoteRepository) error {
			_ = repo.Create(newNote("discarded", time.Now().UTC()))
			panic("handler blew up")
		})
	})

	var count int64
	require.NoError(t, db.Model(&entity.Note{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNoteStore_SessionHonoursCancelledContext(t *testing.T) {
	store := repository.NewNoteStore(openDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.Session(ctx, func(repo service.NoteRepository) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
