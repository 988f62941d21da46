package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// message type constants for websocket communication
const (
	// is sent by the editor whenever the buffer changes
	TypeDetect = "detect"

	// is sent by server with the detected language tag
	TypeLanguage = "language"

	// is sent when an error occurs
	TypeError = "error"

	// is sent by clients to keep the connection alive
	TypePing = "ping"

	// is sent by server in response to ping
	TypePong = "pong"

	// is sent by server before shutdown
	TypeServerShutdown = "server_shutdown"
)

// client connection constants
const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// maximum message size allowed from peer
	maxMessageSize = 128 * 1024

	// maximum detections per second per connection (roughly one per keystroke)
	maxDetectionsPerSecond = 20

	// content size limit for a single snippet
	maxCodeSize = 100 * 1024

	// how long clients get to read the shutdown notice
	shutdownGrace = 250 * time.Millisecond
)

// hub connection limit constants
const (
	defaultMaxConnectionsPerIP = 10
)

// errors
var (
	ErrConnectionClosed  = errors.New("connection closed")
	ErrInvalidMessage    = errors.New("invalid message format")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrCodeTooLarge      = errors.New("code too large")
)

// represents a websocket message with typed payload
type Message struct {
	Type      string          `json:"type"`
	ID        string          `json:"id,omitempty"` // echoed in the reply so the editor can drop stale answers
	ClientID  string          `json:"-"`            // internal only, not sent to clients
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// contains the editor buffer to classify
type DetectPayload struct {
	Code string `json:"code"`
}

// contains the detected language tag
type LanguagePayload struct {
	Language string `json:"language"`
}

// contains information about server shutdown
type ServerShutdownPayload struct {
	Reason string `json:"reason"`
}

// represents a websocket client connection
type Client struct {
	// unique identifier for this client
	ID string

	// remote address used for connection limits
	IPAddress string

	// underlying websocket connection
	conn *websocket.Conn

	// hub this client belongs to
	hub *Hub

	// buffered channel of outbound messages
	send chan []byte

	// guards closed and the rate limit window
	mu sync.RWMutex

	// true once send has been closed
	closed bool

	// detection timestamps inside the current one-second window
	detectTimestamps []time.Time
}

// tracks live connections and dispatches their messages to handlers
type Hub struct {
	// registered clients by client ID
	clients map[string]*Client

	// channel for registering clients
	Register chan *Client

	// channel for unregistering clients
	Unregister chan *Client

	// channel for inbound messages
	Incoming chan *Message

	// message handlers by type
	handlers map[string]MessageHandler

	// closed once to stop Run
	shutdown     chan struct{}
	shutdownOnce sync.Once

	// closed when Run has returned
	done chan struct{}

	// active connections per IP address
	ipConnections map[string]int

	// per-IP connection cap
	maxConnectionsPerIP int

	mu sync.RWMutex
}

// processes one message type for a client
type MessageHandler func(hub *Hub, client *Client, msg *Message) error
