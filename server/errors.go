package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"saudicars/dataset"
	"saudicars/locale"
	"saudicars/views"
)

// APIError is the JSON body of every failed request.
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// FieldError names the query parameter that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewAPIError creates an APIError.
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{StatusCode: status, ErrorCode: code, Message: message}
}

// ErrValidation reports an invalid query parameter.
func ErrValidation(field, message string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  "VALIDATION_FAILED",
		Message:    "Request validation failed",
		Details:    FieldError{Field: field, Message: message},
	}
}

// ErrNotFound reports an unknown resource.
func ErrNotFound(resource string) *APIError {
	return NewAPIError(http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("%s not found", resource))
}

// toAPIError maps pipeline errors onto responses. A data source failure is
// the single load error message; an empty filter result is NO_DATA.
func toAPIError(err error, s *locale.Strings) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return ErrValidation(fe.Field(), fmt.Sprintf("failed %q constraint", fe.Tag()))
	}

	switch {
	case dataset.IsDataSourceError(err):
		return NewAPIError(http.StatusServiceUnavailable, "DATA_SOURCE_ERROR", s.LoadError(err))
	case errors.Is(err, views.ErrNoData), errors.Is(err, dataset.ErrEmptyDataset):
		return NewAPIError(http.StatusNotFound, "NO_DATA", s.NoData)
	}
	return NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
}
