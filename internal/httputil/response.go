package httputil

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorResponse is the uniform body of every non-2xx response.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Detail    string            `json:"detail"`
	Timestamp time.Time         `json:"timestamp"`
	Fields    map[string]string `json:"fields,omitempty"`
	Status    string            `json:"status,omitempty"`
}

// MessageResponse acknowledges updates and deletes.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// now is swapped in tests.
var now = time.Now

// RespondJSON writes a JSON response with the given status code.
// It marshals first so an encoding failure can't leave a partial response.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondError writes the error envelope for status with the given detail.
func RespondError(w http.ResponseWriter, status int, detail string) {
	writeError(w, status, ErrorResponse{Detail: detail})
}

// RespondValidationError writes a 422 envelope including per-field reasons.
func RespondValidationError(w http.ResponseWriter, detail string, fields map[string]string) {
	writeError(w, http.StatusUnprocessableEntity, ErrorResponse{Detail: detail, Fields: fields})
}

// RespondErrorWithStatus writes an error envelope that also carries a
// top-level status marker, as the health endpoint does.
func RespondErrorWithStatus(w http.ResponseWriter, status int, detail, marker string) {
	writeError(w, status, ErrorResponse{Detail: detail, Status: marker})
}

func writeError(w http.ResponseWriter, status int, body ErrorResponse) {
	body.Error = http.StatusText(status)
	body.Timestamp = now().UTC()

	payload, err := json.Marshal(body)
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
