package grist

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a hard (non-retryable) failure reported by the Grist
// API: a non-2xx status, an error field in a JSON body, or a body that could
// not be parsed as JSON.
type APIError struct {
	// URL is the fully resolved request URL that failed.
	URL string

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Body is the raw response body.
	Body []byte

	// ResponseJSON is the parsed body, when parsing succeeded.
	ResponseJSON interface{}

	// Message overrides the rendered detail, e.g. "failed to parse JSON".
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	detail := e.Message
	if detail == "" && e.ResponseJSON != nil {
		data, err := json.Marshal(e.ResponseJSON)
		if err == nil {
			detail = string(data)
		}
	}

	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}

	return fmt.Sprintf("error at %s, code %d: %s", e.URL, e.StatusCode, detail)
}

// ErrorDetail returns the "error" field of the parsed body, if present.
func (e *APIError) ErrorDetail() string {
	body, ok := e.ResponseJSON.(map[string]interface{})
	if !ok {
		return ""
	}

	detail, ok := body["error"].(string)
	if !ok {
		return ""
	}

	return detail
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired        = errors.New("config is required")
	ErrAPIKeyNotFound        = errors.New("Grist API key not found in GRIST_API_KEY env, nor in key file")
	ErrKeyAndSessionConflict = errors.New("a client can't take both an API key and an existing session")
	ErrRecordIDRequired      = errors.New("record is missing the required id field")
	ErrNotImplemented        = errors.New("not implemented")
)

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}

	return false
}
