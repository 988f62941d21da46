package websocket

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"codeberg.org/codelens/server/internal/errors"
	"codeberg.org/codelens/server/internal/logger"
	ws "codeberg.org/codelens/server/internal/websocket"
)

// DetectHandler upgrades an authorized request into a live language-detection
// socket. The editor sends {"type":"detect","id":..,"payload":{"code":..}} frames
// and receives {"type":"language","id":..,"payload":{"language":..}} replies.
//
// @Summary Live language detection socket
// @Tags analysis
// @Param api_key query string false "Shared secret (or use a bearer token)"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /ws/detect [get]
func DetectHandler(hub *ws.Hub, upgrader *websocket.Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ipAddress := c.ClientIP()

		// check connection limits before accepting new connection
		canAccept, reason := hub.CanAcceptConnection(ipAddress)
		if !canAccept {
			errors.TooManyRequests(c, reason)
			return
		}

		// the upgrader writes its own error response on failure
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("failed to upgrade connection",
				"ip", ipAddress,
				"error", err,
			)

			return
		}

		// track IP connection only after successful upgrade
		hub.TrackIPConnection(ipAddress)

		client := ws.NewClient(ws.GenerateClientID(), ipAddress, conn, hub)

		if !hub.Add(client) {
			conn.Close() //nolint:errcheck,gosec // hub is shutting down
			return
		}

		go client.WritePump()
		go client.ReadPump()

		logger.Info("websocket connection established",
			"client_id", client.ID,
			"ip", ipAddress,
			"request_id", c.GetString("request_id"),
		)
	}
}
