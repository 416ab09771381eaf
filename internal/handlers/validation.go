package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationDetail validates req and returns a "field: message; ..." detail,
// or "" when req is valid.
func validationDetail(req interface{}) string {
	err := validate.Struct(req)
	if err == nil {
		return ""
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	msgs := make([]string, 0, len(fieldErrors))
	for _, e := range fieldErrors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), validationMessage(e)))
	}
	return strings.Join(msgs, "; ")
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field required"
	case "min":
		return fmt.Sprintf("must have at least %s character(s)", e.Param())
	case "max":
		return fmt.Sprintf("must have at most %s character(s)", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}
