package syntax

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"

	"codeberg.org/codelens/server/internal/auth"
	"codeberg.org/codelens/server/internal/syntaxcheck"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockChecker struct {
	checkFunc    func(ctx context.Context, code, language string) (*syntaxcheck.Result, error)
	calls        int
	lastLanguage string
}

func (m *mockChecker) Check(ctx context.Context, code, language string) (*syntaxcheck.Result, error) {
	m.calls++
	m.lastLanguage = language

	if m.checkFunc != nil {
		return m.checkFunc(ctx, code, language)
	}

	return &syntaxcheck.Result{Language: language, Diagnostics: []string{}}, nil
}

func failWith(err error) func(context.Context, string, string) (*syntaxcheck.Result, error) {
	return func(context.Context, string, string) (*syntaxcheck.Result, error) {
		return nil, err
	}
}

func post(checker Checker, body string) *httptest.ResponseRecorder {
	router := gin.New()
	RegisterRoutes(&router.RouterGroup, checker, auth.APIKeyMiddleware(auth.NewGate("key")))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/syntax_check", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	return w
}

func TestCheck_Diagnostics(t *testing.T) {
	checker := &mockChecker{
		checkFunc: func(context.Context, string, string) (*syntaxcheck.Result, error) {
			return &syntaxcheck.Result{Diagnostics: []string{"a.c:1:1: error: expected ';'", "1 error generated."}}, nil
		},
	}

	w := post(checker, `{"api_key":"key","code":"int x","language":"c"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"errors":["a.c:1:1: error: expected ';'","1 error generated."]}`, w.Body.String())
	assert.Equal(t, "c", checker.lastLanguage)
}

func TestCheck_CleanCodeIsEmptyListNotNull(t *testing.T) {
	checker := &mockChecker{
		checkFunc: func(context.Context, string, string) (*syntaxcheck.Result, error) {
			return &syntaxcheck.Result{}, nil
		},
	}

	w := post(checker, `{"api_key":"key","code":"x = 1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"errors":[]}`, w.Body.String())
	assert.Equal(t, "python", checker.lastLanguage)
}

func TestCheck_Unsupported(t *testing.T) {
	checker := &mockChecker{
		checkFunc: func(context.Context, string, string) (*syntaxcheck.Result, error) {
			return &syntaxcheck.Result{Diagnostics: []string{syntaxcheck.UnsupportedLanguage}, Unsupported: true}, nil
		},
	}

	w := post(checker, `{"api_key":"key","code":"fn main(){}","language":"rust"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"errors":["Unsupported language"]}`, w.Body.String())
}

func TestCheck_FailureStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "unavailable",
			err:    &syntaxcheck.CheckError{Language: "java", Tool: "javac", Kind: syntaxcheck.ErrCheckerUnavailable, Cause: exec.ErrNotFound},
			status: http.StatusServiceUnavailable,
			code:   "checker_unavailable",
		},
		{
			name:   "timeout",
			err:    &syntaxcheck.CheckError{Language: "java", Tool: "javac", Kind: syntaxcheck.ErrCheckTimeout, Cause: context.DeadlineExceeded},
			status: http.StatusGatewayTimeout,
			code:   "check_timeout",
		},
		{
			name:   "silent failure",
			err:    &syntaxcheck.CheckError{Language: "java", Tool: "javac", Kind: syntaxcheck.ErrCheckFailed},
			status: http.StatusBadGateway,
			code:   "check_failed",
		},
		{
			name:   "workspace error",
			err:    errors.New("creating workspace: disk full"),
			status: http.StatusInternalServerError,
			code:   "server_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(&mockChecker{checkFunc: failWith(tt.err)}, `{"api_key":"key","code":"class A {}","language":"java"}`)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error":"`+tt.code+`"`)
		})
	}
}

func TestCheck_UnauthorizedSpawnsNothing(t *testing.T) {
	checker := &mockChecker{}

	w := post(checker, `{"api_key":"wrong","code":"print(","language":"python"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	assert.Zero(t, checker.calls)
}
