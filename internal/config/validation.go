package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError is a single invalid setting
type ValidationError struct {
	FieldPath string
	Message   string
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
	}
	return sb.String()
}

// Validate checks the console settings. Storage is only checked when
// requireStorage is set, so the TUI runs without S3 credentials.
func (c *ConsoleConfig) Validate(requireStorage bool) error {
	var validationErrors ValidationErrors

	if err := validate.Struct(c); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "")...)
	}

	if requireStorage {
		if c.Storage == nil {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: "storage",
				Message:   "configuration must contain a 'storage' section or S3_ENDPOINT",
			})
		} else if err := validate.Struct(c.Storage); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "storage")...)
		}
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}

func convertValidatorErrors(err error, prefix string) ValidationErrors {
	var result ValidationErrors

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return ValidationErrors{{FieldPath: prefix, Message: err.Error()}}
	}

	for _, e := range fieldErrors {
		path := tomlFieldName(e.StructField())
		if prefix != "" {
			path = prefix + "." + path
		}
		result = append(result, ValidationError{
			FieldPath: path,
			Message:   getValidationMessage(e),
		})
	}
	return result
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

var tomlNames = map[string]string{
	"APIURL":      "api_url",
	"Endpoint":    "endpoint",
	"AccessKey":   "access_key",
	"SecretKey":   "secret_key",
	"Bucket":      "bucket",
	"KeyTemplate": "key_template",
}

func tomlFieldName(field string) string {
	if name, ok := tomlNames[field]; ok {
		return name
	}
	return strings.ToLower(field)
}
