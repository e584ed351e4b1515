package serverutils

import (
	"strings"

	"ai-coursekb-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and folds the failures into a
// single validation error so the middleware can answer 400 with one message.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.Validation("invalid request payload")
	}

	var parts []string
	for _, fieldErr := range validationErrors {
		parts = append(parts, fieldErr.Field()+" failed on "+fieldErr.Tag())
	}
	return apperror.Validation("validation failed: %s", strings.Join(parts, "; "))
}
