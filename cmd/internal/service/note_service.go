package service

import (
	"context"
	"time"

	"notesbackend/cmd/internal/contract"
	"notesbackend/cmd/internal/domain/entity"
)

type NoteRepository interface {
	FindPage(skip, limit int) ([]*entity.Note, error)
	FindByID(id int64) (*entity.Note, error)
	Create(note *entity.Note) error
	Save(note *entity.Note) error
	Delete(note *entity.Note) error
}

// NoteStore opens a unit of work over the notes table. Implementations must
// commit when fn returns nil and roll back otherwise.
type NoteStore interface {
	Session(ctx context.Context, fn func(repo NoteRepository) error) error
}

// DefaultNoteService implements the note operations. A nil note with a nil
// error means the note does not exist, it is never reported as an error.
type DefaultNoteService struct {
	Store NoteStore
	Now   func() time.Time
}

func NewNoteService(store NoteStore) *DefaultNoteService {
	return &DefaultNoteService{Store: store, Now: NowUTC}
}

func (n *DefaultNoteService) GetNote(ctx context.Context, id int64) (*entity.Note, error) {
	var note *entity.Note
	err := n.Store.Session(ctx, func(repo NoteRepository) error {
		var err error
		note, err = repo.FindByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (n *DefaultNoteService) ListNotes(ctx context.Context, skip, limit int) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := n.Store.Session(ctx, func(repo NoteRepository) error {
		var err error
		notes, err = repo.FindPage(skip, limit)
		return err
	})
	if err != nil {
		return nil, err
	}

	if notes == nil {
		notes = []*entity.Note{}
	}
	return notes, nil
}

func (n *DefaultNoteService) CreateNote(ctx context.Context, req *contract.CreateNoteRequest) (*entity.Note, error) {
	now := n.Now()
	note := &entity.Note{
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := n.Store.Session(ctx, func(repo NoteRepository) error {
		return repo.Create(note)
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (n *DefaultNoteService) UpdateNote(ctx context.Context, id int64, req *contract.UpdateNoteRequest) (*entity.Note, error) {
	var note *entity.Note
	err := n.Store.Session(ctx, func(repo NoteRepository) error {
		found, err := repo.FindByID(id)
		if err != nil || found == nil {
			return err
		}

		if req.Title != nil {
			found.Title = *req.Title
		}
		if req.Content != nil {
			content := *req.Content
			found.Content = &content
		}

		found.UpdatedAt = n.nextUpdatedAt(found)
		if err = repo.Save(found); err != nil {
			return err
		}

		note = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes the note for good and returns it as it was right before
// the deletion.
func (n *DefaultNoteService) DeleteNote(ctx context.Context, id int64) (*entity.Note, error) {
	var note *entity.Note
	err := n.Store.Session(ctx, func(repo NoteRepository) error {
		found, err := repo.FindByID(id)
		if err != nil || found == nil {
			return err
		}

		if err = repo.Delete(found); err != nil {
			return err
		}

		note = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// nextUpdatedAt never goes backwards, even if the wall clock does.
func (n *DefaultNoteService) nextUpdatedAt(note *entity.Note) time.Time {
	now := n.Now()
	if !now.After(note.UpdatedAt) {
		return note.UpdatedAt.Add(time.Microsecond)
	}
	return now
}
