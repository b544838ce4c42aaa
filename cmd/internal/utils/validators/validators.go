package validators

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EchoValidator plugs go-playground's validator into echo.Context.Validate.
type EchoValidator struct {
	validate *validator.Validate
}

func New() *EchoValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(JSONFieldName)
	return &EchoValidator{validate: validate}
}

func (e *EchoValidator) Validate(i any) error {
	return e.validate.Struct(i)
}

// JSONFieldName reports fields by their JSON name so validation errors match
// the request body the client sent.
func JSONFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}
