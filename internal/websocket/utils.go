package websocket

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"codeberg.org/codelens/server/internal/logger"
	"github.com/google/uuid"
)

// creates a new message with the given payload
func NewMessage(msgType, id string, payload any) (*Message, error) {
	msg := &Message{
		Type:      msgType,
		ID:        id,
		Timestamp: time.Now(),
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}

		msg.Payload = data
	}

	return msg, nil
}

// decodes the message payload into v
func (m *Message) UnmarshalPayload(v any) error {
	if len(m.Payload) == 0 {
		return ErrInvalidMessage
	}

	return json.Unmarshal(m.Payload, v)
}

// OriginChecker builds the upgrader's origin policy from the CORS allow-list.
//
// Requests without an Origin header come from non-browser clients and are
// allowed outside production.
func OriginChecker(allowedOrigins []string, allowAll, production bool) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		if origin == "" {
			if !production {
				return true
			}

			logger.Warn("websocket connection with no origin header")
			return false
		}

		if allowAll || slices.Contains(allowedOrigins, origin) {
			return true
		}

		logger.Warn("websocket origin rejected - not in allowed origins",
			"origin", origin,
			"allowed_origins", allowedOrigins,
		)

		return false
	}
}

func GenerateClientID() string {
	return uuid.NewString()
}
