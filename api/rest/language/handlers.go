package language

import (
	"net/http"

	"codeberg.org/codelens/server/internal/langdetect"
	"codeberg.org/codelens/server/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Detect godoc
// @Summary Guess the language of a code snippet
// @Description Keyword heuristics; returns python, java, c, cpp or plaintext
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body DetectRequest true "Snippet"
// @Success 200 {object} DetectResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /detect_language [post]
// @Security ApiKeyAuth
func Detect(c *gin.Context) {
	var req DetectRequest
	_ = c.ShouldBindBodyWith(&req, binding.JSON) //nolint:errcheck

	lang := langdetect.Detect(req.Code)
	metrics.ObserveDetection(lang)

	c.JSON(http.StatusOK, DetectResponse{Language: lang})
}
