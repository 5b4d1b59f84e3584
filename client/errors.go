package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a structured error response from the motif API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("motif: %d %s: %s (request_id=%s)", e.StatusCode, e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("motif: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func hasCode(err error, code string) bool {
	var e *APIError
	return errors.As(err, &e) && e.Code == code
}

// IsInvalidRequest reports a rejected motif, hint or body.
func IsInvalidRequest(err error) bool { return hasCode(err, "invalid_request") }

// IsSearchLimit reports a search that exceeded the server's pending work
// limit. Adding hints or a smaller motif usually helps.
func IsSearchLimit(err error) bool { return hasCode(err, "search_limit") }

// IsTimeout reports a search that ran past the server timeout.
func IsTimeout(err error) bool { return hasCode(err, "timeout") }

// IsRateLimited returns true if the error is a 429.
func IsRateLimited(err error) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == http.StatusTooManyRequests
}

// parseAPIError attempts to decode a JSON error body; falls back to raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = string(body)
	}
	return apiErr
}
