package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeInventory map[string]bool

func (f fakeInventory) Languages() []string {
	return []string{"c", "python"}
}

func (f fakeInventory) IsAvailable(language string) bool {
	return f[language]
}

func TestHandler(t *testing.T) {
	router := gin.New()
	RegisterRoutes(router, fakeInventory{"python": true})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"codelens","version":"1.0.0","checkers":{"c":false,"python":true}}`, w.Body.String())
}

func TestPingHandler(t *testing.T) {
	router := gin.New()
	RegisterRoutes(router, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
