package rest

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// validationError turns validator output into one message per field.
func validationError(err error) ResponseError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ResponseError{Message: err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}

	return ResponseError{Message: "validation failed", Errors: fields}
}

func fieldMessage(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if isText {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "password_strength":
		return "must contain at least one uppercase letter and one special character (!@#$%^&*)"
	case "role":
		return "must be one of admin, store_owner, normal_user"
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "is invalid"
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ResponseError{Message: message})
}

// paramID parses a positive numeric path parameter.
func paramID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
