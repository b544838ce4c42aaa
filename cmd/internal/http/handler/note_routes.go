package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"notesbackend/cmd/internal/contract"
	"notesbackend/cmd/internal/domain/entity"
	"notesbackend/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// NoteService is the operation layer behind the note routes. A nil note with
// a nil error means the note does not exist.
type NoteService interface {
	ListNotes(ctx context.Context, skip, limit int) ([]*entity.Note, error)
	GetNote(ctx context.Context, id int64) (*entity.Note, error)
	CreateNote(ctx context.Context, req *contract.CreateNoteRequest) (*entity.Note, error)
	UpdateNote(ctx context.Context, id int64, req *contract.UpdateNoteRequest) (*entity.Note, error)
	DeleteNote(ctx context.Context, id int64) (*entity.Note, error)
}

type DefaultNoteRoute struct {
	NoteService NoteService
}

func NewNoteDefault(noteService NoteService) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService}
}

func (n *DefaultNoteRoute) GetNotes(c echo.Context) error {
	query := contract.ListNotesQuery{
		Skip:  contract.DefaultListSkip,
		Limit: contract.DefaultListLimit,
	}

	err := echo.QueryParamsBinder(c).
		Int("skip", &query.Skip).
		Int("limit", &query.Limit).
		BindError()
	if err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) {
			return c.JSON(http.StatusUnprocessableEntity, apierror.NewInvalidParamTypeError(be.Field, "int"))
		}
		return c.JSON(http.StatusUnprocessableEntity, apierror.NewFieldError("query", "Invalid query parameters"))
	}

	if apierr := validate(c, &query); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	notes, err := n.NoteService.ListNotes(c.Request().Context(), query.Skip, query.Limit)
	if err != nil {
		log.Errorf("failed to fetch notes: %v", err)
		return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return c.JSON(http.StatusOK, resp)
}

func (n *DefaultNoteRoute) GetNote(c echo.Context) error {
	id, apierr := noteID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	note, err := n.NoteService.GetNote(c.Request().Context(), id)
	if err != nil {
		log.Errorf("failed to fetch note %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
	}

	if note == nil {
		return c.JSON(http.StatusNotFound, apierror.NoteNotFoundError)
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

func (n *DefaultNoteRoute) CreateNote(c echo.Context) error {
	var req contract.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		apierr := bindError(err)
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := validate(c, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	note, err := n.NoteService.CreateNote(c.Request().Context(), &req)
	if err != nil {
		log.Errorf("failed to create note: %v", err)
		return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
	}
	return c.JSON(http.StatusCreated, toNoteResponse(note))
}

func (n *DefaultNoteRoute) UpdateNote(c echo.Context) error {
	id, apierr := noteID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		apierr := bindError(err)
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := validate(c, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	note, err := n.NoteService.UpdateNote(c.Request().Context(), id, &req)
	if err != nil {
		log.Errorf("failed to update note %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
	}

	if note == nil {
		return c.JSON(http.StatusNotFound, apierror.NoteNotFoundError)
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

func (n *DefaultNoteRoute) DeleteNote(c echo.Context) error {
	id, apierr := noteID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	note, err := n.NoteService.DeleteNote(c.Request().Context(), id)
	if err != nil {
		log.Errorf("failed to delete note %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
	}

	if note == nil {
		return c.JSON(http.StatusNotFound, apierror.NoteNotFoundError)
	}
	return c.NoContent(http.StatusNoContent)
}

func noteID(c echo.Context) (int64, apierror.ErrorResponse) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError("id", "int")
	}
	return id, nil
}

func validate(c echo.Context, req any) apierror.ErrorResponse {
	err := c.Validate(req)
	if err == nil {
		return nil
	}

	if verr := apierror.FromValidationError(err); verr != nil {
		return verr
	}

	log.Errorf("unexpected validation failure: %v", err)
	return apierror.InternalServerError
}

// bindError turns a body decoding failure into a response. Type mismatches
// are validation errors on the field, anything else is a malformed body.
func bindError(err error) apierror.ErrorResponse {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apierror.NewFieldError(field, "Value has invalid type, expected: %s", typeErr.Type.String())
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code == http.StatusUnsupportedMediaType {
		return apierror.InvalidMediaTypeError
	}
	return apierror.MalformedJSONError
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	return &contract.NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt.UTC(),
		UpdatedAt: note.UpdatedAt.UTC(),
	}
}
