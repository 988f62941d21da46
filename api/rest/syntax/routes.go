package syntax

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, checker Checker, gate gin.HandlerFunc) {
	router.POST("/syntax_check", gate, Check(checker))
}
