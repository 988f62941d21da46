package errors

import (
	"net/http"

	"codeberg.org/codelens/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for failed requests
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//
// For services and internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Expose sentinel errors (syntaxcheck.ErrCheckerUnavailable, ...) for the handler to map
//   - Do not log errors in non-handler code (avoid double logging)

// standard error codes
const (
	// the frontend matches on this exact value
	CodeUnauthorized       = "Unauthorized"
	CodeBadRequest         = "bad_request"
	CodeServerError        = "server_error"
	CodeTooManyRequests    = "too_many_requests"
	CodeCheckerUnavailable = "checker_unavailable"
	CodeCheckTimeout       = "check_timeout"
	CodeCheckFailed        = "check_failed"
	CodeSuggestionFailed   = "suggestion_failed"
)

// returns the fixed 401 body: {"error":"Unauthorized"}
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Error: CodeUnauthorized,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	logFailure(c, message, err)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.Header("Retry-After", "60")
	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeTooManyRequests,
		Message: message,
	})
}

// returns a 503 when the external checker binary is not installed on the host
func CheckerUnavailable(c *gin.Context, language string, err error) {
	logFailure(c, "syntax checker unavailable", err, "language", language)

	c.JSON(http.StatusServiceUnavailable, ErrorResponse{
		Error:   CodeCheckerUnavailable,
		Message: "no syntax checker is installed for " + language,
		Details: sanitizeError(err),
	})
}

// returns a 504 when the external checker exceeded its time budget
func CheckTimeout(c *gin.Context, language string, err error) {
	logFailure(c, "syntax check timed out", err, "language", language)

	c.JSON(http.StatusGatewayTimeout, ErrorResponse{
		Error:   CodeCheckTimeout,
		Message: "syntax check timed out",
		Details: sanitizeError(err),
	})
}

// returns a 502 when the checker exited abnormally without reporting diagnostics
func CheckFailed(c *gin.Context, language string, err error) {
	logFailure(c, "syntax checker failed", err, "language", language)

	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   CodeCheckFailed,
		Message: "syntax checker exited without diagnostics",
		Details: sanitizeError(err),
	})
}

// returns a 502 when the remote completion service failed
func SuggestionFailed(c *gin.Context, message string, err error) {
	if message == "" {
		message = "suggestion service error"
	}

	logFailure(c, message, err)

	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   CodeSuggestionFailed,
		Message: message,
		Details: sanitizeError(err),
	})
}

func logFailure(c *gin.Context, message string, err error, args ...any) {
	args = append(args,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", c.GetString("request_id"),
	)

	logger.ErrorErr(err, message, args...)
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	return classifyError(err).sanitized
}
