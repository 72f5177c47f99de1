package shared

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/livefit/livefit-api/internal/domain"
)

// Global validator instance for reuse
var validate = newValidator()

// newValidator returns a validator with the application's custom tags:
//
//	password  8-16 chars with a digit, a lower and an upper case letter
//	https     absolute https URL
//	notblank  non-empty after trimming spaces
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return domain.ValidatePassword(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("https", func(fl validator.FieldLevel) bool {
		return domain.IsHTTPSURL(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	// Otherwise, use the struct validator
	return validate.Struct(v)
}

// FailedTag returns the first validation tag that failed in err, or "" if
// err is not a validation error.
func FailedTag(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return ""
	}
	return verrs[0].Tag()
}
