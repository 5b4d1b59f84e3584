package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/motif/internal/dbpool"
	"github.com/persistorai/motif/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log          *logrus.Logger
	Pool         *dbpool.Pool
	Motifs       MotifService
	Hosts        HostService
	History      SearchHistory
	TenantLookup middleware.TenantLookup
	CORSOrigins  []string
	Version      string

	// SearchesPerTenant caps concurrent searches of one tenant.
	SearchesPerTenant int
}

// Router-level limits.
const (
	maxBodySize       = 64 << 20 // 64 MB, host imports
	maxSearchBodySize = 4 << 20  // 4 MB
	rateLimit         = 50       // requests per second per IP
	rateBurst         = 100      // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders(deps.Version))
	r.Use(middleware.MaxBodySize(maxBodySize))

	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.VersionHeader},
			MaxAge:           1 * time.Hour,
			AllowCredentials: false,
		}))
	}

	r.Use(middleware.NewRateLimiter(rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	health := NewHealthHandler(deps.Pool, deps.Log, deps.Version)
	motifs := NewMotifHandler(deps.Motifs, deps.History, deps.Log)
	hosts := NewHostHandler(deps.Hosts, deps.Log)

	// Health and readiness are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// All other API routes require authentication.
	lookup := middleware.NewCachedTenantLookup(deps.TenantLookup)
	api.Use(middleware.AuthMiddleware(lookup, middleware.NewKeyLockout(deps.Log), deps.Log))

	slots := middleware.NewSearchSlots(deps.SearchesPerTenant)
	searchBody := middleware.MaxBodySize(maxSearchBodySize)
	api.POST("/motifs/search", searchBody, slots.Handler(), motifs.Search)
	api.POST("/motifs/count", searchBody, slots.Handler(), motifs.Count)
	api.GET("/motifs/history", motifs.History)

	api.POST("/hosts/import", hosts.Import)
	api.POST("/hosts/invalidate", hosts.Invalidate)
}

// NewRouter creates and configures the Gin engine with all middleware and
// routes. Prometheus metrics are served separately on the metrics port.
func NewRouter(deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(r, deps)
	registerRoutes(r.Group("/api/v1"), deps)

	return r
}
