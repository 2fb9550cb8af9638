package handlers

import (
	"encoding/json"
	"net/http"
)

// StatusSuccess is the envelope status of every successful response.
const StatusSuccess = "success"

// Envelope wraps a successful result.
type Envelope struct {
	Status string `json:"status"`
	Result any    `json:"result"`
}

// WriteSuccess writes result inside the success envelope.
func WriteSuccess(w http.ResponseWriter, status int, result any) {
	writeJSON(w, status, Envelope{Status: StatusSuccess, Result: result})
}

// WriteFieldErrors writes a field → messages mapping as a 422 response. The
// mapping is the whole body, not wrapped in an envelope.
func WriteFieldErrors(w http.ResponseWriter, fieldErrs map[string][]string) {
	writeJSON(w, http.StatusUnprocessableEntity, fieldErrs)
}

// WriteError writes a standardised JSON error response.
func WriteError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
