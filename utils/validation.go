package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	// validate is the singleton validator instance
	validate *validator.Validate
)

func init() {
	validate = validator.New()

	// Report fields by their JSON names
	validate.RegisterTagNameFunc(jsonName)

	// notblank rejects empty and whitespace-only strings and nil pointers
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validator: %v", err))
	}
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// MessageProvider is implemented by request types that declare their own
// client-facing validation messages. Keys are "field.tag" or "field".
type MessageProvider interface {
	ValidationMessages() map[string]string
}

// ValidateStruct validates a struct using go-playground/validator.
// Every field is checked; at most one message is reported per field, in declaration order.
// invalidFields names JSON fields whose values had the wrong type when the
// struct was decoded; they are reported with the rule failures.
func ValidateStruct(s interface{}, invalidFields ...string) error {
	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(s); err != nil && !errors.As(err, &fieldErrs) {
		return err
	}
	if len(fieldErrs) == 0 && len(invalidFields) == 0 {
		return nil
	}

	var messages map[string]string
	if p, ok := s.(MessageProvider); ok {
		messages = p.ValidationMessages()
	}
	if len(invalidFields) == 0 {
		return NewValidationError(fieldErrs, messages)
	}
	return mergeTypeErrors(s, NewValidationError(fieldErrs, messages), invalidFields, messages)
}

// mergeTypeErrors adds a message for each mistyped field to verr, replacing any
// rule failure on the same field and keeping declaration order.
func mergeTypeErrors(s interface{}, verr *ValidationError, invalidFields []string, messages map[string]string) *ValidationError {
	for _, field := range invalidFields {
		msg, ok := messages[field+".type"]
		if !ok {
			msg, ok = messages[field]
		}
		if !ok {
			msg = fmt.Sprintf("%s has an invalid type", field)
		}
		verr.Fields[field] = msg
	}

	verr.Errors = verr.Errors[:0]
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	seen := make(map[string]bool, len(verr.Fields))
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			name := jsonName(t.Field(i))
			if msg, ok := verr.Fields[name]; ok && !seen[name] {
				verr.Errors = append(verr.Errors, msg)
				seen[name] = true
			}
		}
	}
	// Fields that are not top-level struct fields go last
	for _, field := range invalidFields {
		if !seen[field] {
			verr.Errors = append(verr.Errors, verr.Fields[field])
			seen[field] = true
		}
	}
	return verr
}

// ValidationError wraps validation errors with structured details
type ValidationError struct {
	Message string
	Errors  []string          // ordered client-facing messages
	Fields  map[string]string // field name to message
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError from validator.ValidationErrors.
// messages overrides the default text per "field.tag" or "field".
func NewValidationError(errs validator.ValidationErrors, messages map[string]string) *ValidationError {
	fields := make(map[string]string, len(errs))
	ordered := make([]string, 0, len(errs))

	for _, err := range errs {
		field := err.Field()
		if _, seen := fields[field]; seen {
			continue
		}

		msg, ok := messages[field+"."+err.Tag()]
		if !ok {
			msg, ok = messages[field]
		}
		if !ok {
			msg = defaultMessage(err)
		}

		fields[field] = msg
		ordered = append(ordered, msg)
	}

	return &ValidationError{
		Message: "Validation failed",
		Errors:  ordered,
		Fields:  fields,
	}
}

func defaultMessage(err validator.FieldError) string {
	field := err.Field()
	switch err.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, err.Param())
	default:
		return fmt.Sprintf("%s validation failed on '%s' tag", field, err.Tag())
	}
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// GetValidationErrors extracts the ordered messages from a ValidationError
func GetValidationErrors(err error) []string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Errors
	}
	return nil
}

// GetValidationFields extracts field errors from a ValidationError
func GetValidationFields(err error) map[string]string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields
	}
	return nil
}
