package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// builds the upgrader for the detection socket with the given origin policy
func NewUpgrader(checkOrigin func(r *http.Request) bool) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}
}
