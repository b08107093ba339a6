package common

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors converts validator failures into a 400 carrying one FieldError per rule.
// Other errors become ErrInvalidInput.
func ValidationErrors(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewError(ErrCodeValidationInput, MsgValidationError, StatusBadRequest, err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return NewError(ErrCodeValidationInput, MsgValidationError, StatusBadRequest, fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Email is invalid"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "username":
		return "Username must be 3 to 30 lowercase letters, digits, underscores or dots"
	case "fullname":
		return "Full name may contain only letters and spaces"
	case "objectid":
		return fmt.Sprintf("%s is not a valid id", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "no_xss":
		return fmt.Sprintf("%s contains forbidden content", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
