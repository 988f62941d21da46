package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, config *Config) *gin.Engine {
	t.Helper()

	l, err := New(config)
	require.NoError(t, err)

	router := gin.New()
	router.Use(l.Middleware())
	router.POST("/score", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	return router
}

func do(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:4711"
	router.ServeHTTP(w, req)

	return w
}

func TestMiddleware_LimitsPerClient(t *testing.T) {
	router := newRouter(t, &Config{Enabled: true, Rate: "2-M"})

	assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/score").Code)

	w := do(router, http.MethodPost, "/score")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = do(router, http.MethodPost, "/score")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"too_many_requests"`)
}

func TestMiddleware_ExemptPaths(t *testing.T) {
	router := newRouter(t, &Config{Enabled: true, Rate: "1-M", ExemptPaths: []string{"/health"}})

	for range 5 {
		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/health").Code)
	}
}

func TestMiddleware_Disabled(t *testing.T) {
	router := newRouter(t, &Config{Enabled: false, Rate: "1-M"})

	for range 3 {
		assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/score").Code)
	}
}

func TestNew_InvalidRate(t *testing.T) {
	_, err := New(&Config{Rate: "lots"})
	assert.Error(t, err)
}

func TestConfig_IsExemptPath(t *testing.T) {
	config := DefaultConfig()

	assert.True(t, config.IsExemptPath("/metrics"))
	assert.True(t, config.IsExemptPath("/health"))
	assert.False(t, config.IsExemptPath("/healthz"))
	assert.False(t, config.IsExemptPath("/score"))
}
