package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedSample struct {
	route  string
	method string
	code   int
}

type fakeObserver struct {
	samples []recordedSample
}

func (f *fakeObserver) ObserveRequest(route, method string, code int, _ time.Duration) {
	f.samples = append(f.samples, recordedSample{route, method, code})
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	obs := &fakeObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/public/issues/:code", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/public/issues/ABCDEF123456", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, obs.samples, 2)
	assert.Equal(t, recordedSample{"/public/issues/:code", http.MethodGet, http.StatusNotFound}, obs.samples[0])
	assert.Equal(t, "", obs.samples[1].route)
}
