package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedJSONError    = NewSimple(http.StatusBadRequest, "Malformed JSON body")
	InvalidMediaTypeError = NewSimple(http.StatusUnsupportedMediaType, "Content-Type must be application/json")
	InternalServerError   = NewSimple(http.StatusInternalServerError, "Internal server error")

	NoteNotFoundError = NewSimple(http.StatusNotFound, "Note not found")
	RouteNotFound     = NewSimple(http.StatusNotFound, "Not found")
	MethodNotAllowed  = NewSimple(http.StatusMethodNotAllowed, "Method not allowed")
)

// FromValidationError maps validator failures to a 422 response keyed by the
// offending field. It returns nil if err did not come from the validator.
func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	problems := NewStructured(http.StatusUnprocessableEntity)
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems.Add(field, "This field is required")
		case "min":
			if fe.Kind() == reflect.String {
				problems.Add(field, "Value is too short, min: "+fe.Param())
			} else {
				problems.Add(field, "Value must be greater than or equal to "+fe.Param())
			}
		case "max":
			problems.Add(field, "Value is too long, max: "+fe.Param())

		default:
			problems.Add(field, "Invalid value provided")
		}
	}
	return problems
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

// NewFieldError is a single-field validation error.
func NewFieldError(field, problem string, args ...any) *StructuredError {
	if len(args) > 0 {
		problem = fmt.Sprintf(problem, args...)
	}

	s := NewStructured(http.StatusUnprocessableEntity)
	s.Add(field, problem)
	return s
}

func NewInvalidParamTypeError(name, dataType string) *StructuredError {
	return NewFieldError(name, "Parameter has invalid type, expected: %s", dataType)
}
