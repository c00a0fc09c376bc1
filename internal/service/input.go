package service

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/meridian/catalog/api/internal/model"
)

var validate = validator.New()

// ServiceInput is the raw inbound payload for create and update.
// Every field arrives as text, exactly as a form submission delivers
// it; parseServiceInput is the single place loose input becomes a
// typed value.
type ServiceInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	IsActive    string `json:"isActive"`
	IsFeatured  string `json:"isFeatured"`
}

// serviceDraft is the parsed, validated form of ServiceInput
type serviceDraft struct {
	Name        string  `validate:"required"`
	Description string  `validate:"required"`
	Price       float64 `validate:"gte=0"`
	IsActive    bool
	IsFeatured  bool
}

// parseServiceInput converts raw text input into a validated draft.
// Missing or unparseable flags fall back to their defaults (active,
// not featured); everything else that fails to parse is rejected, not
// coerced.
func parseServiceInput(in ServiceInput) (serviceDraft, *ValidationError) {
	var fieldErrs []model.FieldError

	d := serviceDraft{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		IsActive:    parseFlag(in.IsActive, true),
		IsFeatured:  parseFlag(in.IsFeatured, false),
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	switch {
	case err != nil:
		fieldErrs = append(fieldErrs, model.FieldError{
			Field:   "price",
			Message: "price must be a number",
		})
	case math.IsNaN(price) || math.IsInf(price, 0):
		fieldErrs = append(fieldErrs, model.FieldError{
			Field:   "price",
			Message: "price must be a finite number",
		})
	default:
		d.Price = price
	}

	if err := validate.Struct(d); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			fieldErrs = append(fieldErrs, model.FieldError{Field: "input", Message: "invalid input"})
		} else {
			for _, fe := range err.(validator.ValidationErrors) {
				fieldErrs = append(fieldErrs, model.FieldError{
					Field:   strings.ToLower(fe.Field()),
					Message: validationMessage(fe),
				})
			}
		}
	}

	if len(fieldErrs) > 0 {
		return serviceDraft{}, &ValidationError{Fields: fieldErrs}
	}
	return d, nil
}

// parseFlag parses the literal "true"/"false", falling back to def
// for anything absent or unparseable
func parseFlag(s string, def bool) bool {
	switch strings.TrimSpace(s) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return field + " must be a non-negative number"
	default:
		return field + " is invalid"
	}
}
