// Package httputil provides JSON request/response helpers for the HTTP API.
//
// Handlers decode request bodies with DecodeJSON, reply with WriteJSON, and
// report failures with WriteError, which maps structured error codes from
// pkg/errors to HTTP status codes so every endpoint fails the same way.
package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// MaxBodySize caps request bodies to keep a single request from exhausting
// memory. Word lists are small; generous headroom for big clouds.
const MaxBodySize = 4 << 20 // 4 MiB

// ErrorResponse is the JSON error body returned by all endpoints.
type ErrorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// DecodeJSON decodes a request body into v, rejecting unknown fields and
// oversized bodies.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a structured error response. The status code comes from
// the error's code; plain errors map to 500.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusFor(err), ErrorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

// WriteErrorf writes an error response from a code and formatted message.
func WriteErrorf(w http.ResponseWriter, code errors.Code, format string, args ...any) {
	WriteJSON(w, statusForCode(code), ErrorResponse{
		Error: fmt.Sprintf(format, args...),
		Code:  code,
	})
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	return statusForCode(errors.GetCode(err))
}

func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidScale,
		errors.ErrCodeInvalidSpiral:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeStore, errors.ErrCodeCache:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
