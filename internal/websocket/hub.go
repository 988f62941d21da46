package websocket

import (
	"time"

	"codeberg.org/codelens/server/internal/errors"
	"codeberg.org/codelens/server/internal/logger"
)

// NewHub creates a hub; maxPerIP <= 0 uses the default cap.
func NewHub(maxPerIP int) *Hub {
	if maxPerIP <= 0 {
		maxPerIP = defaultMaxConnectionsPerIP
	}

	return &Hub{
		clients:             make(map[string]*Client),
		Register:            make(chan *Client),
		Unregister:          make(chan *Client),
		Incoming:            make(chan *Message, 256),
		handlers:            make(map[string]MessageHandler),
		shutdown:            make(chan struct{}),
		done:                make(chan struct{}),
		ipConnections:       make(map[string]int),
		maxConnectionsPerIP: maxPerIP,
	}
}

// registers a handler for a specific message type
func (h *Hub) RegisterHandler(messageType string, handler MessageHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[messageType] = handler
}

// starts the hub's main loop
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case message := <-h.Incoming:
			h.handleMessage(message)

		case <-h.shutdown:
			h.closeAllConnections()
			return
		}
	}
}

// hands a client to the hub unless it is shutting down
func (h *Hub) Add(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.shutdown:
		return false
	}
}

func (h *Hub) remove(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.shutdown:
	}
}

func (h *Hub) dispatch(msg *Message) {
	select {
	case h.Incoming <- msg:
	case <-h.shutdown:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	logger.Debug("client registered",
		"client_id", client.ID,
		"ip", client.IPAddress,
		"active", len(h.clients),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	delete(h.clients, client.ID)
	client.Close()

	h.ipConnections[client.IPAddress]--
	if h.ipConnections[client.IPAddress] <= 0 {
		delete(h.ipConnections, client.IPAddress)
	}

	logger.Debug("client unregistered",
		"client_id", client.ID,
		"active", len(h.clients),
	)
}

// processes an incoming message
func (h *Hub) handleMessage(msg *Message) {
	h.mu.RLock()
	sender, exists := h.clients[msg.ClientID]
	handler, handled := h.handlers[msg.Type]
	h.mu.RUnlock()

	if !exists {
		logger.Warn("sender client not found for message",
			"client_id", msg.ClientID,
			"message_type", msg.Type,
		)
		return
	}

	if !handled {
		logger.Warn("unhandled message type received",
			"message_type", msg.Type,
			"client_id", sender.ID,
		)

		sender.SendError(msg.ID, errors.CodeBadRequest, "unsupported message type")
		return
	}

	// handlers are cheap and run inline so replies keep request order
	if err := handler(h, sender, msg); err != nil {
		logger.ErrorErr(err, "handler error",
			"message_type", msg.Type,
			"client_id", sender.ID,
		)

		sender.SendError(msg.ID, "server_error", "failed to process message")
	}
}

// checks the per-IP connection cap before an upgrade
func (h *Hub) CanAcceptConnection(ipAddress string) (bool, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.ipConnections[ipAddress] >= h.maxConnectionsPerIP {
		return false, "Maximum connections per IP address exceeded"
	}

	return true, ""
}

// increments the connection count for an IP address
func (h *Hub) TrackIPConnection(ipAddress string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ipConnections[ipAddress]++
}

// returns the number of registered clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// stops Run after notifying every client; safe to call more than once
func (h *Hub) Shutdown() {
	h.shutdownOnce.Do(func() {
		close(h.shutdown)
	})
}

// waits until Run has returned
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) closeAllConnections() {
	h.mu.RLock()

	logger.Info("notifying clients of server shutdown", "clients", len(h.clients))

	shutdownMsg, err := NewMessage(TypeServerShutdown, "", ServerShutdownPayload{
		Reason: "server is shutting down",
	})
	if err != nil {
		logger.ErrorErr(err, "failed to create shutdown message")
	} else {
		for _, client := range h.clients {
			client.Send(shutdownMsg) //nolint:errcheck,gosec // best-effort notice
		}
	}

	h.mu.RUnlock()

	// give clients time to receive the shutdown message
	time.Sleep(shutdownGrace)

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		client.Close()
	}

	h.clients = make(map[string]*Client)
	h.ipConnections = make(map[string]int)
}
