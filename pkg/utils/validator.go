package utils

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
)

var (
	validate = newValidator()
	decoder  = form.NewDecoder()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the form field name so templates can look them up.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateForm decodes values into dst (a pointer to a form struct) and runs
// its validate tags. It returns nil when every field is valid, otherwise a map
// of form field name to message.
func ValidateForm(dst any, values url.Values) map[string]string {
	errs := make(map[string]string)

	if err := decoder.Decode(dst, values); err != nil {
		var decodeErrs form.DecodeErrors
		if !errors.As(err, &decodeErrs) {
			errs["form"] = "Invalid form submission"
			return errs
		}
		for field := range decodeErrs {
			errs[field] = parseMessage(dst, field)
		}
	}

	for field, msg := range ValidateStruct(dst) {
		if _, exists := errs[field]; !exists {
			errs[field] = msg
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateStruct(data any) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		structType := reflect.TypeOf(data)
		for structType.Kind() == reflect.Ptr {
			structType = structType.Elem()
		}
		for _, fe := range validationErrors {
			errs[fe.Field()] = getErrorMessage(structType, fe)
		}
	}

	return errs
}

// getErrorMessage converts validator errors to human-readable messages. A
// field may override every non-required message with a `message` tag.
func getErrorMessage(structType reflect.Type, err validator.FieldError) string {
	if err.Tag() != "required" {
		if field, ok := structType.FieldByName(err.StructField()); ok {
			if msg := field.Tag.Get("message"); msg != "" {
				return msg
			}
		}
	}

	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", err.Param())
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// parseMessage returns the `parse` tag of the field bound to the form name, if
// any, for values that could not be converted to the field's type.
func parseMessage(dst any, name string) string {
	structType := reflect.TypeOf(dst)
	for structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() == reflect.Struct {
		for i := 0; i < structType.NumField(); i++ {
			field := structType.Field(i)
			if strings.SplitN(field.Tag.Get("form"), ",", 2)[0] != name {
				continue
			}
			if msg := field.Tag.Get("parse"); msg != "" {
				return msg
			}
		}
	}
	return "Not a valid integer value"
}
