package types

import (
	"net/http"
)

type ValidationErrors map[string][]string

// ApiError is the error body every failed request carries:
// {statusCode, message, details?, errors?}.
type ApiError struct {
	StatusCode int              `json:"statusCode"`
	Message    string           `json:"message"`
	Details    string           `json:"details,omitempty"`
	Errors     ValidationErrors `json:"errors,omitempty"`
}

func NewApiError(statusCode int, message, details string) *ApiError {
	if message == "" {
		message = defaultMessageForStatusCode(statusCode)
	}
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		Details:    details,
	}
}

func NewValidationError(errors ValidationErrors) *ApiError {
	return &ApiError{
		StatusCode: http.StatusBadRequest,
		Message:    "Validation failed",
		Errors:     errors,
	}
}

func defaultMessageForStatusCode(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "A bad request was made"
	case http.StatusUnauthorized:
		return "You are not authorized"
	case http.StatusForbidden:
		return "You do not have permission to perform this action"
	case http.StatusNotFound:
		return "Resource was not found"
	case http.StatusConflict:
		return "This operation conflicts with an existing resource"
	case http.StatusInternalServerError:
		return "An internal server error occurred"
	default:
		return "An unexpected error occurred"
	}
}
