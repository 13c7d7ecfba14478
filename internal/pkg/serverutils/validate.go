package serverutils

import (
	"fmt"

	"place-journal-be/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a request DTO and converts
// failures into a validation-kind error the handler middleware maps to 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperr.NewValidation("invalid request body")
		}
		first := validationErrors[0]
		return apperr.NewValidation(fmt.Sprintf("field %s failed on %s", first.Field(), first.Tag()))
	}
	return nil
}
