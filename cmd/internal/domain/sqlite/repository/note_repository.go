package repository

import (
	"context"
	"errors"
	"fmt"

	"notesbackend/cmd/internal/domain/entity"
	"notesbackend/cmd/internal/service"

	"gorm.io/gorm"
)

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

// FindPage returns the newest notes first. Ties on created_at are broken by
// id so pages stay stable.
func (d *DefaultNoteRepository) FindPage(skip, limit int) ([]*entity.Note, error) {
	notes := []*entity.Note{}
	err := d.db.
		Order("created_at DESC").
		Order("id DESC").
		Offset(skip).
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindByID(id int64) (*entity.Note, error) {
	var note entity.Note
	err := d.db.First(&note, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (d *DefaultNoteRepository) Create(note *entity.Note) error {
	return d.db.Create(note).Error
}

func (d *DefaultNoteRepository) Save(note *entity.Note) error {
	return d.db.Save(note).Error
}

func (d *DefaultNoteRepository) Delete(note *entity.Note) error {
	return d.db.Delete(note).Error
}

// DefaultNoteStore hands out one transaction-bound repository per unit of
// work.
type DefaultNoteStore struct {
	db *gorm.DB
}

func NewNoteStore(db *gorm.DB) *DefaultNoteStore {
	return &DefaultNoteStore{db: db}
}

// Session runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise, including when fn panics.
func (s *DefaultNoteStore) Session(ctx context.Context, fn func(repo service.NoteRepository) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewNoteRepository(tx))
	})
	if err != nil {
		return fmt.Errorf("note session: %w", err)
	}
	return nil
}
