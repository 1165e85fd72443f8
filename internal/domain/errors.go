package domain

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrValidation         = errors.New("validation failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// NotFoundError indicates a resource was not found
type NotFoundError struct {
	ResourceType string
	ResourceID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.ResourceType, e.ResourceID)
}

func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// Is allows errors.Is() to match against ErrNotFound
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFound builds a NotFoundError for the given resource.
func NewNotFound(resourceType string, id int64) error {
	return &NotFoundError{ResourceType: resourceType, ResourceID: id}
}

// ValidationError carries field-level failures. Fields maps the offending
// field name to a human-readable reason; Message is used when the failure is
// not attributable to a single field (e.g. malformed JSON).
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Message == "" {
			return ErrValidation.Error()
		}
		return e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	msg := strings.Join(parts, "; ")
	if e.Message != "" {
		msg = e.Message + ": " + msg
	}
	return msg
}

func (e *ValidationError) StatusCode() int { return http.StatusUnprocessableEntity }

// Is allows errors.Is() to match against ErrValidation
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError creates a ValidationError with a single message and no field map.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NewFieldError creates a ValidationError for a single field.
func NewFieldError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// ConflictError represents a uniqueness conflict with an existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (project, task)
	Field        string // Field that collided (e.g. name)
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) StatusCode() int { return http.StatusConflict }

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
