package language

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, gate gin.HandlerFunc) {
	router.POST("/detect_language", gate, Detect)
}
