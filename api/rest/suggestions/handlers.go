package suggestions

import (
	"context"
	"net/http"

	"codeberg.org/codelens/server/internal/errors"
	"codeberg.org/codelens/server/internal/suggest"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type Suggester interface {
	Suggest(ctx context.Context, code, language string) (*suggest.Result, error)
}

// Suggest godoc
// @Summary Suggest a corrected version of a code snippet
// @Description Sends the snippet to the configured completion service and returns the fixed code with explanatory comments
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body SuggestRequest true "Snippet and language (defaults to python)"
// @Success 200 {object} SuggestResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /ml_suggest [post]
// @Security ApiKeyAuth
func Suggest(svc Suggester) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SuggestRequest

		// missing fields fall back to empty values
		_ = c.ShouldBindBodyWith(&req, binding.JSON) //nolint:errcheck

		if req.Language == "" {
			req.Language = suggest.DefaultLanguage
		}

		result, err := svc.Suggest(c.Request.Context(), req.Code, req.Language)
		if err != nil {
			errors.SuggestionFailed(c, "failed to generate suggestion", err)
			return
		}

		c.JSON(http.StatusOK, SuggestResponse{Suggestion: result.Text})
	}
}
