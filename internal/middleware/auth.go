package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TenantIDKey is the gin context key holding the authenticated tenant.
const TenantIDKey = "tenant_id"

// authTimingFloor is the minimum duration of a rejected request, so response
// time does not reveal whether a key exists.
const authTimingFloor = 50 * time.Millisecond

// TenantLookup resolves an API key to a tenant ID.
type TenantLookup interface {
	GetTenantByAPIKey(ctx context.Context, apiKey string) (string, error)
}

// AuthMiddleware authenticates requests by Bearer API key and stores the
// tenant ID under TenantIDKey. A nil lockout disables failure tracking.
func AuthMiddleware(lookup TenantLookup, lockout *KeyLockout, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if c.Writer.Status() == http.StatusUnauthorized {
				if d := authTimingFloor - time.Since(start); d > 0 {
					time.Sleep(d)
				}
			}
		}()

		apiKey := ExtractBearerToken(c)
		if apiKey == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization header")
			return
		}

		if lockout != nil && lockout.Locked(apiKey) {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "too many failed authentication attempts")
			return
		}

		tenantID, err := lookup.GetTenantByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			log.WithFields(logrus.Fields{
				"client_ip":  c.ClientIP(),
				"path":       c.Request.URL.Path,
				"request_id": c.GetString(RequestIDKey),
				"key_prefix": keyPrefix(apiKey),
			}).Warn("authentication failed")

			if lockout != nil {
				lockout.Fail(apiKey)
			}

			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid api key")
			return
		}

		if lockout != nil {
			lockout.Reset(apiKey)
		}

		c.Set(TenantIDKey, tenantID)
		c.Next()
	}
}

// ExtractBearerToken returns the token of a "Bearer <token>" Authorization
// header, or "" when the header is missing or malformed.
func ExtractBearerToken(c *gin.Context) string {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok {
		return ""
	}

	return strings.TrimSpace(token)
}

func keyPrefix(key string) string {
	if len(key) > 4 {
		return key[:4] + "..."
	}

	return key
}
