// Package httputil maps domain errors onto HTTP responses so transport
// handlers stay small.
package httputil

import (
	"encoding/json"
	"net/http"

	"scholarhub/pkg/domerrors"
)

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
	Field       string `json:"field,omitempty"`
}

// WriteError translates a domain error into a status code and JSON body.
// Internal failure details never reach the client.
func WriteError(w http.ResponseWriter, err error) {
	code := domerrors.CodeOf(err)
	status := statusOf(code)

	body := errorBody{Error: wireCode(code)}
	if status < http.StatusInternalServerError {
		body.Description = domerrors.MessageOf(err)
		body.Field = domerrors.FieldOf(err)
	}
	WriteJSON(w, status, body)
}

func statusOf(code domerrors.Code) int {
	switch code {
	case domerrors.CodeInvalidArgument, domerrors.CodeUnexpectedField:
		return http.StatusBadRequest
	case domerrors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func wireCode(code domerrors.Code) string {
	switch code {
	case domerrors.CodeInvalidArgument:
		return "invalid_argument"
	case domerrors.CodeUnexpectedField:
		return "unexpected_field"
	case domerrors.CodeNotFound:
		return "not_found"
	case domerrors.CodePersistence:
		return "persistence_failure"
	case domerrors.CodeCacheSync:
		return "cache_sync_failure"
	default:
		return "internal_error"
	}
}
