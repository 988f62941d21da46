package syntax

import (
	"context"
	stderrors "errors"
	"net/http"

	"codeberg.org/codelens/server/internal/errors"
	"codeberg.org/codelens/server/internal/syntaxcheck"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const defaultLanguage = "python"

type Checker interface {
	Check(ctx context.Context, code, language string) (*syntaxcheck.Result, error)
}

// Check godoc
// @Summary Run the language's compiler in syntax-only mode
// @Description Supported languages are python, java, c and cpp; anything else yields ["Unsupported language"]
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body CheckRequest true "Snippet and language (defaults to python)"
// @Success 200 {object} CheckResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Failure 504 {object} errors.ErrorResponse
// @Router /syntax_check [post]
// @Security ApiKeyAuth
func Check(checker Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckRequest
		_ = c.ShouldBindBodyWith(&req, binding.JSON) //nolint:errcheck

		if req.Language == "" {
			req.Language = defaultLanguage
		}

		result, err := checker.Check(c.Request.Context(), req.Code, req.Language)
		if err != nil {
			switch {
			case stderrors.Is(err, syntaxcheck.ErrCheckerUnavailable):
				errors.CheckerUnavailable(c, req.Language, err)
			case stderrors.Is(err, syntaxcheck.ErrCheckTimeout):
				errors.CheckTimeout(c, req.Language, err)
			case stderrors.Is(err, syntaxcheck.ErrCheckFailed):
				errors.CheckFailed(c, req.Language, err)
			default:
				errors.InternalError(c, "syntax check failed", err)
			}

			return
		}

		diagnostics := result.Diagnostics
		if diagnostics == nil {
			diagnostics = []string{}
		}

		c.JSON(http.StatusOK, CheckResponse{Errors: diagnostics})
	}
}
