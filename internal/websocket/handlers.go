package websocket

import (
	"codeberg.org/codelens/server/internal/errors"
	"codeberg.org/codelens/server/internal/metrics"
)

// classifies the payload code and replies with a language message
func DetectHandler(detect func(code string) string) MessageHandler {
	return func(_ *Hub, client *Client, msg *Message) error {
		var payload DetectPayload
		if err := msg.UnmarshalPayload(&payload); err != nil {
			client.SendError(msg.ID, errors.CodeBadRequest, "detect payload must be {\"code\": string}")
			return nil
		}

		if len(payload.Code) > maxCodeSize {
			client.SendError(msg.ID, errors.CodeBadRequest, ErrCodeTooLarge.Error())
			return nil
		}

		if !client.checkDetectRateLimit() {
			client.SendError(msg.ID, errors.CodeTooManyRequests, ErrRateLimitExceeded.Error())
			return nil
		}

		lang := detect(payload.Code)
		metrics.ObserveDetection(lang)

		reply, err := NewMessage(TypeLanguage, msg.ID, LanguagePayload{Language: lang})
		if err != nil {
			return err
		}

		client.Send(reply) //nolint:errcheck,gosec // closed clients are already gone
		return nil
	}
}

// handles ping messages from clients (keep-alive)
func PingHandler() MessageHandler {
	return func(_ *Hub, client *Client, msg *Message) error {
		pongMsg, err := NewMessage(TypePong, msg.ID, nil)
		if err != nil {
			return err
		}

		client.Send(pongMsg) //nolint:errcheck,gosec // best-effort pong
		return nil
	}
}
