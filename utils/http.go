package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxBodyBytes caps the size of decoded request bodies
const MaxBodyBytes = 1 << 20

// ErrTrailingData is returned when a request body holds more than one JSON value
var ErrTrailingData = errors.New("request body must contain a single JSON value")

// ErrorResponse represents a structured error response.
// Errors lists human-readable validation messages in field order.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// MessageResponse represents a plain informational response
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteOK writes a 200 OK response with data as the body
func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteCreated writes a 201 Created response with a Location header and an empty body
func WriteCreated(w http.ResponseWriter, location string) {
	w.Header().Set("Location", location)
	w.WriteHeader(http.StatusCreated)
}

// WriteNoContent writes a 204 No Content response
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteBadRequest writes a 400 Bad Request response with validation messages
func WriteBadRequest(w http.ResponseWriter, message string, errs []string) error {
	return WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Message: message,
		Errors:  errs,
	})
}

// WriteUnauthorized writes a 401 Unauthorized response
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Access Denied"
	}
	return WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Message: message})
}

// WriteForbidden writes a 403 Forbidden response
func WriteForbidden(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Access forbidden"
	}
	return WriteJSON(w, http.StatusForbidden, ErrorResponse{Message: message})
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return WriteJSON(w, http.StatusNotFound, ErrorResponse{Message: message})
}

// WriteInternalServerError writes a 500 Internal Server Error response
func WriteInternalServerError(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Message: message})
}

// DecodeJSON decodes a single JSON value from the request body into dst.
// The body is capped at MaxBodyBytes. An empty body returns io.EOF.
// A *json.UnmarshalTypeError is returned after the whole value was read, so
// the remaining fields of dst are still populated.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	var typeErr *json.UnmarshalTypeError
	if err != nil && !errors.As(err, &typeErr) {
		return err
	}

	if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
		return ErrTrailingData
	}
	return err
}
