package apierror_test

import (
	"errors"
	"net/http"
	"testing"

	"notesbackend/cmd/internal/contract"
	"notesbackend/cmd/internal/utils/apierror"
	"notesbackend/cmd/internal/utils/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValidationError(t *testing.T) {
	v := validators.New()
	long := "x"
	for len(long) <= 128 {
		long += long
	}

	err := v.Validate(&contract.CreateNoteRequest{Title: long})
	require.Error(t, err)

	verr := apierror.FromValidationError(err)
	require.NotNil(t, verr)
	assert.Equal(t, http.StatusUnprocessableEntity, verr.Code())
	assert.Equal(t, map[string][]string{"title": {"Value is too long, max: 128"}}, verr.Errors)

	err = v.Validate(&contract.ListNotesQuery{Skip: -1, Limit: -5})
	require.Error(t, err)

	verr = apierror.FromValidationError(err)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"Value must be greater than or equal to 0"}, verr.Errors["skip"])
	assert.Equal(t, []string{"Value must be greater than or equal to 0"}, verr.Errors["limit"])
}

func TestFromValidationError_IgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, apierror.FromValidationError(errors.New("nope")))
	assert.Nil(t, apierror.FromValidationError(nil))
}

func TestNewFieldError(t *testing.T) {
	err := apierror.NewInvalidParamTypeError("id", "int")

	assert.Equal(t, http.StatusUnprocessableEntity, err.Code())
	assert.Equal(t, []string{"Parameter has invalid type, expected: int"}, err.Errors["id"])
}

func TestNewSimple(t *testing.T) {
	err := apierror.NewSimple(http.StatusTeapot, "brewing %d cups", 3)

	assert.Equal(t, http.StatusTeapot, err.Code())
	assert.Equal(t, "brewing 3 cups", err.Message)
}
