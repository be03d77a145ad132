package reviews

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	minRating = 1
	maxRating = 5
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// report fields by the names clients send
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a write is rejected because of its input.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "review validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether field is among the offending fields.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validate checks a create request. It returns nil or a *ValidationError
// naming every offending field.
func Validate(in CreateInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// validateUpdate only guards the rating range; the other fields are merged
// as given.
func validateUpdate(in UpdateInput) error {
	r := in.rating()
	if r == 0 || (r >= minRating && r <= maxRating) {
		return nil
	}
	return &ValidationError{Fields: []FieldError{{
		Field:   "rating",
		Message: ratingRangeMessage(),
	}}}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() == "rating" {
			return ratingRangeMessage()
		}
		return fmt.Sprintf("%s is required", fe.Field())
	case "min", "max":
		if fe.Field() == "rating" {
			return ratingRangeMessage()
		}
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}

func ratingRangeMessage() string {
	return fmt.Sprintf("rating must be between %d and %d", minRating, maxRating)
}
