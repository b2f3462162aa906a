package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/gema-reportcard/internal/dto"
	"github.com/noah-isme/gema-reportcard/internal/scoring"
)

// ValidationError describes the first field of a request that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

var fieldComponents = map[string]scoring.Component{
	"Midterm":  scoring.ComponentMidterm,
	"Endterm":  scoring.ComponentEndterm,
	"Internal": scoring.ComponentInternal,
}

var componentLabels = map[scoring.Component]string{
	scoring.ComponentMidterm:  "Midterm",
	scoring.ComponentEndterm:  "End term",
	scoring.ComponentInternal: "Internal",
}

// ComponentLabel returns the display name of a scored component.
func ComponentLabel(c scoring.Component) string {
	if label, ok := componentLabels[c]; ok {
		return label
	}
	return string(c)
}

func validateMark(validate *validator.Validate, component scoring.Component, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &ValidationError{Field: string(component), Message: "Please enter a valid number!"}
	}

	tag := fmt.Sprintf("gte=0,lte=%g", scoring.MaxMarks(component))
	if err := validate.Var(value, tag); err != nil {
		return rangeError(component)
	}
	return nil
}

func validateRequest(validate *validator.Validate, req dto.ReportCardRequest) error {
	for _, value := range []float64{req.Midterm, req.Endterm, req.Internal} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return &ValidationError{Field: "marks", Message: "Please enter a valid number!"}
		}
	}

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate report card: %w", err)
	}

	first := fieldErrs[0]
	switch first.Field() {
	case "Name":
		return &ValidationError{Field: "name", Message: "Name cannot be empty!"}
	case "RollNumber":
		return &ValidationError{Field: "roll_number", Message: "Roll number cannot be empty!"}
	}

	if component, ok := fieldComponents[first.Field()]; ok {
		return rangeError(component)
	}
	return &ValidationError{Field: first.Field(), Message: first.Error()}
}

func rangeError(component scoring.Component) *ValidationError {
	return &ValidationError{
		Field:   string(component),
		Message: fmt.Sprintf("%s marks should be between 0 and %g!", ComponentLabel(component), scoring.MaxMarks(component)),
	}
}
