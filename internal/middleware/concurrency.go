package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// SearchSlots caps the number of searches a tenant may run at once. Searches
// are CPU bound, so one tenant must not occupy every worker.
type SearchSlots struct {
	mu     sync.Mutex
	active map[string]int
	max    int
}

// NewSearchSlots allows up to perTenant concurrent searches per tenant.
func NewSearchSlots(perTenant int) *SearchSlots {
	return &SearchSlots{active: make(map[string]int), max: max(perTenant, 1)}
}

func (s *SearchSlots) acquire(tenantID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active[tenantID] >= s.max {
		return false
	}

	s.active[tenantID]++

	return true
}

func (s *SearchSlots) release(tenantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active[tenantID]--; s.active[tenantID] <= 0 {
		delete(s.active, tenantID)
	}
}

// Active returns the number of running searches of a tenant.
func (s *SearchSlots) Active(tenantID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active[tenantID]
}

// Handler must run after AuthMiddleware.
func (s *SearchSlots) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetString(TenantIDKey)

		if !s.acquire(tenantID) {
			respondError(c, http.StatusTooManyRequests, "too_many_searches", "too many concurrent searches")
			return
		}

		defer s.release(tenantID)

		c.Next()
	}
}
