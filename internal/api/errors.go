package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/persistorai/motif/internal/httputil"
	"github.com/persistorai/motif/internal/metrics"
	"github.com/persistorai/motif/internal/service"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeSearchLimit    = "search_limit"
	ErrCodeHostTooLarge   = "host_too_large"
	ErrCodeTimeout        = "timeout"
	ErrCodeCanceled       = "canceled"
	ErrCodeInternalError  = "internal_error"
)

// statusClientClosed is the de facto status for a request the client
// abandoned.
const statusClientClosed = 499

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondSearchError maps a search error to a response. Validation messages
// are returned to the caller; everything else gets a generic message.
func respondSearchError(c *gin.Context, err error) {
	code := service.ErrorCode(err)

	switch code {
	case ErrCodeInvalidRequest:
		respondError(c, http.StatusBadRequest, code, err.Error())
	case ErrCodeSearchLimit:
		respondError(c, http.StatusUnprocessableEntity, code, "search exceeded the pending work limit; add hints or narrow the motif")
	case ErrCodeHostTooLarge:
		respondError(c, http.StatusUnprocessableEntity, code, "host graph exceeds the size this service loads")
	case ErrCodeTimeout:
		respondError(c, http.StatusGatewayTimeout, code, "search timed out")
	case ErrCodeCanceled:
		respondError(c, statusClientClosed, code, "request canceled")
	default:
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
