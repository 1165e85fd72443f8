package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Anything that is
// not a recognized domain error is logged and reported as a generic 500.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var validationErr *domain.ValidationError
	var conflictErr *domain.ConflictError

	switch {
	case errors.As(err, &validationErr):
		httputil.RespondValidationError(w, validationErr.Error(), validationErr.Fields)
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondValidationError(w, err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		httputil.RespondError(w, http.StatusServiceUnavailable, "storage unavailable")
	case errors.Is(err, context.Canceled):
		// Client went away; nobody is listening for the body
		logger.Debug("request cancelled", "method", r.Method, "path", r.URL.Path)
	default:
		httputil.RequestLogger(r.Context(), logger).Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		httputil.RespondError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// decodeBody parses a JSON body, turning decode failures into validation errors.
func decodeBody(w http.ResponseWriter, r *http.Request, dest any) error {
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		var decodeErr *httputil.DecodeError
		if errors.As(err, &decodeErr) && decodeErr.Field != "" {
			return domain.NewFieldError(decodeErr.Field, decodeErr.Reason)
		}
		return domain.NewValidationError(err.Error())
	}
	return nil
}

// decodeBodyDeferred decodes like decodeBody, except that a type mismatch
// on a single field is returned as a field failure instead of an error, so
// the service can report it after its existence checks. dest still holds
// whatever decoded successfully.
func decodeBodyDeferred(w http.ResponseWriter, r *http.Request, dest any) (map[string]string, error) {
	err := httputil.ParseJSON(w, r, dest)
	if err == nil {
		return nil, nil
	}
	var decodeErr *httputil.DecodeError
	if errors.As(err, &decodeErr) && decodeErr.Field != "" {
		return map[string]string{decodeErr.Field: decodeErr.Reason}, nil
	}
	return nil, domain.NewValidationError(err.Error())
}

// pathID parses a positive integer path parameter as a validation error on failure.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := httputil.PathID(r, name)
	if err != nil {
		return 0, domain.NewFieldError(name, "must be a positive integer")
	}
	return id, nil
}

// toOptional maps a wire tri-state field onto its domain counterpart
func toOptional[T any](o httputil.Optional[T]) models.Optional[T] {
	return models.Optional[T]{Present: o.Present, Value: o.Value}
}
