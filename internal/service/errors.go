package service

import (
	"errors"
	"fmt"

	"github.com/meridian/catalog/api/internal/model"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

var (
	ErrServiceNotFound = errors.New("service not found")

	// ErrStorageFailure is the generic persistence failure surfaced to
	// callers. Storage detail is logged, never exposed.
	ErrStorageFailure = errors.New("storage operation failed")
)

// ValidationError reports which input rules failed, keyed by field.
// It is produced by the gateway's parse-and-validate step before any
// persistence call and is never retried.
type ValidationError struct {
	Fields []model.FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	msg := fmt.Sprintf("invalid input: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
	if len(e.Fields) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(e.Fields)-1)
	}
	return msg
}
