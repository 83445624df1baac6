package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func newLimitedRouter(t *testing.T, limit int64, window time.Duration) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	r := gin.New()
	r.POST("/login", LoginRateLimiter(rdb, limit, window), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, mr
}

func attemptLogin(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":4321"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginRateLimiterBlocksAfterLimit(t *testing.T) {
	r, _ := newLimitedRouter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if w := attemptLogin(r, "10.0.0.1"); w.Code != http.StatusOK {
			t.Fatalf("attempt %d status = %d, want 200", i+1, w.Code)
		}
	}

	w := attemptLogin(r, "10.0.0.1")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("attempt over limit status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("blocked response missing Retry-After header")
	}

	// a different client IP has its own counter
	if w := attemptLogin(r, "10.0.0.2"); w.Code != http.StatusOK {
		t.Errorf("other ip status = %d, want 200", w.Code)
	}
}

func TestLoginRateLimiterResetsAfterWindow(t *testing.T) {
	r, mr := newLimitedRouter(t, 1, time.Minute)

	if w := attemptLogin(r, "10.0.0.1"); w.Code != http.StatusOK {
		t.Fatalf("first attempt status = %d, want 200", w.Code)
	}
	if w := attemptLogin(r, "10.0.0.1"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second attempt status = %d, want 429", w.Code)
	}

	mr.FastForward(time.Minute + time.Second)

	if w := attemptLogin(r, "10.0.0.1"); w.Code != http.StatusOK {
		t.Errorf("attempt after window status = %d, want 200", w.Code)
	}
}

func TestLoginRateLimiterExposesRemaining(t *testing.T) {
	r, _ := newLimitedRouter(t, 5, time.Minute)

	w := attemptLogin(r, "10.0.0.1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != "5" {
		t.Errorf("X-RateLimit-Limit = %q, want 5", got)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "4" {
		t.Errorf("X-RateLimit-Remaining = %q, want 4", got)
	}
}
