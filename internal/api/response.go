package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/vijay-prabhu/unimatch/internal/logging"
	"github.com/vijay-prabhu/unimatch/internal/validation"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error  string                   `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, ErrorResponse{Error: message})
}

func writeValidationError(w http.ResponseWriter, r *http.Request, err *validation.Error) {
	writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Fields: err.Fields})
}
