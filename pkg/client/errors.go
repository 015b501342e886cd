package client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents an error response from the API
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the error is a 404
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized returns true if the error is a 401
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsQuotaExceeded returns true if the request was rejected for lack of tokens
func (e *APIError) IsQuotaExceeded() bool {
	return e.Code == "QUOTA_EXCEEDED"
}

// IsSelectionRequired returns true if the server needs a target language
// choice before it can translate.
func (e *APIError) IsSelectionRequired() bool {
	return e.Code == "LANGUAGE_SELECTION_REQUIRED"
}

// AsAPIError extracts an *APIError from an error chain, if present
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
