package score

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, gate gin.HandlerFunc) {
	router.POST("/score", gate, Score)
}
