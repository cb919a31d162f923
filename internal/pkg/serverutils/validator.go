package serverutils

import (
	"strings"

	"advisor-chat-be/internal/dto"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts the first failure
// into a field-level error the handler middleware maps to 400.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errs, ok := err.(validator.ValidationErrors); ok {
		verrs = errs
	} else {
		return err
	}

	first := verrs[0]
	return &dto.ValidationError{
		Field:   strings.ToLower(first.Field()),
		Message: tagMessage(first),
	}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "max":
		return "exceeds maximum length of " + fe.Param()
	default:
		return "is invalid"
	}
}
