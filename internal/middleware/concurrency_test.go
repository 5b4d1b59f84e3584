package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/persistorai/motif/internal/middleware"
)

func TestSearchSlots(t *testing.T) {
	slots := middleware.NewSearchSlots(1)
	entered := make(chan struct{})
	release := make(chan struct{})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.TenantIDKey, c.GetHeader("X-Test-Tenant"))
		c.Next()
	})
	r.Use(slots.Handler())
	r.GET("/test", func(c *gin.Context) {
		if c.GetHeader("X-Block") != "" {
			close(entered)
			<-release
		}

		c.Status(http.StatusOK)
	})

	serve := func(tenant string, block bool) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
		req.Header.Set("X-Test-Tenant", tenant)

		if block {
			req.Header.Set("X-Block", "1")
		}

		r.ServeHTTP(w, req)

		return w.Code
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		serve("t1", true)
	}()

	<-entered

	if code := serve("t1", false); code != http.StatusTooManyRequests {
		t.Errorf("second search of t1: got %d, want 429", code)
	}

	if code := serve("t2", false); code != http.StatusOK {
		t.Errorf("search of t2: got %d, want 200", code)
	}

	close(release)
	wg.Wait()

	if n := slots.Active("t1"); n != 0 {
		t.Errorf("Active(t1) = %d after completion", n)
	}

	if code := serve("t1", false); code != http.StatusOK {
		t.Errorf("t1 after release: got %d, want 200", code)
	}
}
