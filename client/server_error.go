package client

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/reactivities/reactivities-go/types"
)

// ServerErrorResponse is the single error value every store action surfaces.
// It is constructed once at the HTTP boundary and never mutated afterwards.
type ServerErrorResponse struct {
	StatusCode       int
	Message          string
	Details          string
	Timestamp        time.Time
	ValidationErrors types.ValidationErrors
}

func NewServerError(statusCode int, message, details string, validationErrors types.ValidationErrors) *ServerErrorResponse {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &ServerErrorResponse{
		StatusCode:       statusCode,
		Message:          message,
		Details:          details,
		Timestamp:        time.Now(),
		ValidationErrors: validationErrors,
	}
}

// FromError normalizes any failure coming out of the agent into a
// ServerErrorResponse. It tolerates four shapes: a structured error body
// with a validation map, a body with only a message, a bare transport
// error, and anything else. Passing an already-normalized error returns it
// unchanged, so normalization is idempotent.
func FromError(err error) *ServerErrorResponse {
	if err == nil {
		return nil
	}

	// Don't double-wrap
	var normalized *ServerErrorResponse
	if errors.As(err, &normalized) {
		return normalized
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		statusCode := reqErr.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusInternalServerError
		}
		return NewServerError(statusCode, reqErr.Body.Message, reqErr.Body.Details, reqErr.Body.Errors)
	}

	// Transport failure or unrecognized error value
	return NewServerError(http.StatusInternalServerError, err.Error(), "", nil)
}

func (e *ServerErrorResponse) Error() string {
	base := fmt.Sprintf("[%d] %s", e.StatusCode, e.FriendlyMessage())
	if e.Details != "" {
		base += " - " + e.Details
	}
	return base
}

func (e *ServerErrorResponse) IsSuccess() bool {
	return e.StatusCode >= 200 && e.StatusCode < 300
}

func (e *ServerErrorResponse) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func (e *ServerErrorResponse) IsServerError() bool {
	return e.StatusCode >= 500
}

func (e *ServerErrorResponse) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

func (e *ServerErrorResponse) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func (e *ServerErrorResponse) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

func (e *ServerErrorResponse) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *ServerErrorResponse) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

func (e *ServerErrorResponse) IsUnprocessableEntity() bool {
	return e.StatusCode == http.StatusUnprocessableEntity
}

func (e *ServerErrorResponse) HasValidationErrors() bool {
	return len(e.ValidationErrors) > 0
}

// FriendlyMessage derives a human-readable message: the joined validation
// errors when present, otherwise a canned phrase for the status code,
// falling back to the raw message.
func (e *ServerErrorResponse) FriendlyMessage() string {
	if e.HasValidationErrors() {
		return e.validationErrorMessage()
	}

	switch e.StatusCode {
	case http.StatusNotFound:
		return "The requested resource was not found"
	case http.StatusBadRequest:
		return "Invalid request. Please check your input"
	case http.StatusUnauthorized:
		return "You need to be logged in to perform this action"
	case http.StatusForbidden:
		return "You do not have permission to perform this action"
	case http.StatusConflict:
		return "This operation conflicts with an existing resource"
	case http.StatusUnprocessableEntity:
		return "The request was well-formed but contains invalid data"
	case http.StatusInternalServerError:
		return "An internal server error occurred"
	case http.StatusServiceUnavailable:
		return "The service is temporarily unavailable"
	default:
		if e.Message != "" {
			return e.Message
		}
		return "An unexpected error occurred"
	}
}

func (e *ServerErrorResponse) validationErrorMessage() string {
	fields := make([]string, 0, len(e.ValidationErrors))
	for field := range e.ValidationErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.ValidationErrors[field], ", ")))
	}

	return "Validation failed - " + strings.Join(parts, "; ")
}
