package language

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/codelens/server/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func post(body string) *httptest.ResponseRecorder {
	router := gin.New()
	RegisterRoutes(&router.RouterGroup, auth.APIKeyMiddleware(auth.NewGate("key")))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/detect_language", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	return w
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"cpp", `{"api_key":"key","code":"#include <iostream>\nint main(){ std::cout << 1; }"}`, `{"language":"cpp"}`},
		{"c", `{"api_key":"key","code":"#include <stdio.h>\nint main(){}"}`, `{"language":"c"}`},
		{"java", `{"api_key":"key","code":"System.out.println(1);"}`, `{"language":"java"}`},
		{"python", `{"api_key":"key","code":"def f():\n  pass"}`, `{"language":"python"}`},
		{"comments only", `{"api_key":"key","code":"# just a note\n// another"}`, `{"language":"plaintext"}`},
		{"missing code", `{"api_key":"key"}`, `{"language":"plaintext"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(tt.body)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestDetect_Unauthorized(t *testing.T) {
	w := post(`{"code":"def f(): pass"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}
