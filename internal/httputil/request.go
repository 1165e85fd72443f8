package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// maxBodyBytes caps request bodies; payloads here are small records.
const maxBodyBytes = 1 << 20

// DecodeError describes why a request body could not be decoded. Field is
// set when the failure maps onto a single JSON field (e.g. a string where a
// number was expected).
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return e.Reason
}

// ParseJSON decodes JSON from the request body into the given destination.
// It limits the request body size and reports failures as *DecodeError.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return classifyDecodeError(err)
	}
	return nil
}

func classifyDecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return &DecodeError{Reason: "request body must be a JSON object"}
		}
		return &DecodeError{Field: field, Reason: "must be of type " + jsonTypeName(typeErr.Type.Kind().String())}
	case errors.As(err, &syntaxErr):
		return &DecodeError{Reason: fmt.Sprintf("invalid JSON at offset %d", syntaxErr.Offset)}
	case errors.As(err, &maxErr):
		return &DecodeError{Reason: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)}
	case errors.Is(err, io.EOF):
		return &DecodeError{Reason: "request body is empty"}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &DecodeError{Reason: "request body is truncated"}
	default:
		return &DecodeError{Reason: "invalid JSON: " + err.Error()}
	}
}

func jsonTypeName(kind string) string {
	switch kind {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return "integer"
	case "float32", "float64":
		return "number"
	case "slice", "array":
		return "array"
	case "struct", "map":
		return "object"
	case "bool":
		return "boolean"
	default:
		return kind
	}
}

// PathID parses a positive integer path parameter.
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// QueryInt parses an optional integer query parameter. A missing parameter
// returns nil without error.
func QueryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("must be an integer")
	}
	return &v, nil
}
