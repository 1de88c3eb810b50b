package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"issuedesk/internal/infrastructure/ratelimit"
	"issuedesk/internal/shared/logger"
)

type fakeLimiter struct {
	budget int
	err    error
	keys   []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string, _ ratelimit.RateLimitConfig) (bool, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return false, f.err
	}
	if f.budget <= 0 {
		return false, nil
	}
	f.budget--
	return true, nil
}

func (f *fakeLimiter) GetRemaining(_ context.Context, _ string, _ time.Duration, _ int) (int64, error) {
	return int64(f.budget), nil
}

func (f *fakeLimiter) Reset(_ context.Context, _ string) error {
	return nil
}

func serveLimited(rl *RateLimiter, n int) []*httptest.ResponseRecorder {
	engine := gin.New()
	engine.GET("/probe", rl.Limit("public"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	out := make([]*httptest.ResponseRecorder, 0, n)
	for i := 0; i < n; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.RemoteAddr = "203.0.113.9:5555"
		engine.ServeHTTP(w, req)
		out = append(out, w)
	}
	return out
}

func TestRateLimiter_Limit_BlocksOverBudget(t *testing.T) {
	limiter := &fakeLimiter{budget: 2}
	rl := NewRateLimiter(limiter, 2, logger.NewNopLogger())

	responses := serveLimited(rl, 3)

	assert.Equal(t, http.StatusOK, responses[0].Code)
	assert.Equal(t, http.StatusOK, responses[1].Code)
	assert.Equal(t, http.StatusTooManyRequests, responses[2].Code)
	assert.Equal(t, "60", responses[2].Header().Get("Retry-After"))
	assert.Equal(t, "public:ip:203.0.113.9", limiter.keys[0])
}

func TestRateLimiter_Limit_PassThrough(t *testing.T) {
	tests := []struct {
		name      string
		limiter   ratelimit.RateLimiter
		perMinute int
	}{
		{"no redis", nil, 10},
		{"disabled by config", &fakeLimiter{}, 0},
		{"limiter error", &fakeLimiter{err: errors.New("redis timeout")}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(tt.limiter, tt.perMinute, logger.NewNopLogger())

			for _, w := range serveLimited(rl, 3) {
				assert.Equal(t, http.StatusOK, w.Code)
			}
		})
	}
}
