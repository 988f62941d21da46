package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "codelens"
	version     = "1.0.0"
)

// reports which syntax checkers were found on this host
type CheckerInventory interface {
	Languages() []string
	IsAvailable(language string) bool
}

// Handler godoc
// @Summary Health check
// @Description Reports service status and which syntax checkers are installed
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func Handler(checkers CheckerInventory) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := Response{
			Status:  "healthy",
			Service: serviceName,
			Version: version,
		}

		if checkers != nil {
			resp.Checkers = make(map[string]bool)
			for _, lang := range checkers.Languages() {
				resp.Checkers[lang] = checkers.IsAvailable(lang)
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
