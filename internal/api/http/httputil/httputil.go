// Package httputil holds the small shared pieces of the HTTP layer: the
// error-returning handler type, JSON helpers and the transport error type.
package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// HandlerFunc is an http.HandlerFunc that reports failures instead of
// writing them. The error translator middleware turns the returned error
// into a response.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Error is a transport-level error carrying the exact status and detail to
// return. Handlers use it when a service error maps to a specific response.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Detail)
}

// NewError builds an Error with the given status code and client-facing
// detail message.
func NewError(status int, detail string) *Error {
	return &Error{Status: status, Detail: detail}
}

// Detail is the uniform error response body.
type Detail struct {
	Detail string `json:"detail"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}

// WriteDetail writes the uniform {"detail": ...} error body.
func WriteDetail(w http.ResponseWriter, status int, detail string) {
	//nolint:errcheck // nothing left to do if the connection is gone
	WriteJSON(w, status, Detail{Detail: detail})
}

// DecodeJSON decodes the request body into v. A malformed body yields an
// error the caller should map to an unprocessable response.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}
