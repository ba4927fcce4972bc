package httpvalidate

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// Error codes used in ErrorDetail.Code.
const (
	CodeValidationFailed = "validation_failed"
	CodeInvalidJSON      = "invalid_json"
	CodeBodyTooLarge     = "payload_too_large"
	CodeUnsupportedMIME  = "unsupported_media_type"
	CodeNotFound         = "not_found"
	CodeInternal         = "internal_error"
)

// Response is the JSON envelope of every answer.
type Response struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a rejected request. Details lists validation errors
// in the order they were found.
type ErrorDetail struct {
	Code    string                     `json:"code"`
	Message string                     `json:"message,omitempty"`
	Details validator.ValidationErrors `json:"details,omitempty"`
}

// WriteJSON writes body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body Response) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// WriteError writes an error envelope.
func WriteError(w http.ResponseWriter, status int, code, message string) error {
	return WriteJSON(w, status, Response{Error: &ErrorDetail{Code: code, Message: message}})
}

// WriteInvalid writes a 422 answer listing errs.
func WriteInvalid(w http.ResponseWriter, errs validator.ValidationErrors) error {
	return WriteJSON(w, http.StatusUnprocessableEntity, Response{Error: &ErrorDetail{
		Code:    CodeValidationFailed,
		Message: "Validation failed",
		Details: errs,
	}})
}
