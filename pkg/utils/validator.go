package utils

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// PasswordSpecialChars is the set a password must draw at least one character from.
const PasswordSpecialChars = "!@#$%^&*"

// Password length and complexity rule shared by registration, admin user
// creation and password changes.
const PasswordRule = "min=8,max=16,password_strength"

// NewValidator returns a validator with the project's custom tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "admin", "store_owner", "normal_user":
			return true
		}
		return false
	})
	return v
}

// IsStrongPassword requires at least one upper-case letter and one special character.
func IsStrongPassword(s string) bool {
	var upper, special bool
	for _, r := range s {
		if unicode.IsUpper(r) {
			upper = true
		}
		if strings.ContainsRune(PasswordSpecialChars, r) {
			special = true
		}
	}
	return upper && special
}

// fieldName reports fields by their json or query name so messages match the request.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "query", "param"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
