package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/persistorai/motif/internal/httputil"
	"github.com/persistorai/motif/internal/metrics"
)

// respondError counts the error and writes it through httputil.RespondError.
func respondError(c *gin.Context, code int, errCode, message string) {
	metrics.ErrorsTotal.WithLabelValues(errCode).Inc()
	httputil.RespondError(c, code, errCode, message)
}
