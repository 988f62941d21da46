package websocket

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	ws "codeberg.org/codelens/server/internal/websocket"
)

// registers the detection socket behind the query-key gate
func RegisterRoutes(router *gin.Engine, hub *ws.Hub, upgrader *websocket.Upgrader, gate gin.HandlerFunc) {
	router.GET("/ws/detect", gate, DetectHandler(hub, upgrader))
}
