package handler

import (
	"errors"

	"github.com/meridian/catalog/api/internal/model"
	"github.com/meridian/catalog/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring
// consistent HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// ===== Validation Errors → 422 =====
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return model.NewValidationError(verr.Fields)
	}

	// ===== Not Found Errors → 404 =====
	if errors.Is(err, service.ErrServiceNotFound) {
		return model.NewNotFoundError("service")
	}

	// ===== Everything else → 500, detail withheld =====
	return model.NewInternalError("")
}
