// ABOUTME: Struct-tag validation for records about to be written
// ABOUTME: Translates validator failures into models.ValidationError field lists
package repository

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/harperreed/crmview/models"
)

var structValidator *validator.Validate

func init() {
	structValidator = validator.New(validator.WithRequiredStructEnabled())

	// Report json field names so messages match what callers submitted.
	structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func (r *Repository[T]) validate(rec T) error {
	err := structValidator.Struct(rec)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate %s: %w", r.kind.Name, err)
	}

	fields := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, models.FieldError{Field: fe.Field(), Reason: reason(fe)})
	}
	return &models.ValidationError{Entity: r.kind.Name, Fields: fields}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	}
	return "is invalid"
}
