package score

import (
	"net/http"

	"codeberg.org/codelens/server/internal/similarity"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Score godoc
// @Summary Compare an original snippet with its corrected version
// @Description Character-level matching-blocks ratio, as a percentage rounded to two decimals
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body ScoreRequest true "Both versions of the snippet"
// @Success 200 {object} ScoreResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /score [post]
// @Security ApiKeyAuth
func Score(c *gin.Context) {
	var req ScoreRequest
	_ = c.ShouldBindBodyWith(&req, binding.JSON) //nolint:errcheck

	c.JSON(http.StatusOK, ScoreResponse{
		Similarity: similarity.Score(req.Original, req.Corrected),
	})
}
