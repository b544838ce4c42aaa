package contract

import "time"

const (
	DefaultListSkip  = 0
	DefaultListLimit = 100
)

type NoteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateNoteRequest struct {
	Title   string  `json:"title" validate:"required,max=128"`
	Content *string `json:"content"`
}

// UpdateNoteRequest is a partial update: nil fields are left untouched.
type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=128"`
	Content *string `json:"content"`
}

type ListNotesQuery struct {
	Skip  int `validate:"min=0"`
	Limit int `validate:"min=0"`
}
