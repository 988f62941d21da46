package health

import "github.com/gin-gonic/gin"

// registers unauthenticated liveness routes
func RegisterRoutes(router *gin.Engine, checkers CheckerInventory) {
	router.GET("/health", Handler(checkers))
	router.GET("/ping", PingHandler)
}
