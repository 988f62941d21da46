package suggestions

import "github.com/gin-gonic/gin"

// registers the suggestion route behind the api key gate
func RegisterRoutes(router *gin.RouterGroup, svc Suggester, gate gin.HandlerFunc) {
	router.POST("/ml_suggest", gate, Suggest(svc))
}
