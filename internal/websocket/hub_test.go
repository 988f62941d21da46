package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// detector stand-in so the hub tests do not depend on the heuristics
func fakeDetect(code string) string {
	if strings.Contains(code, "def ") {
		return "python"
	}

	return "plaintext"
}

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		hub.TrackIPConnection("127.0.0.1")
		client := NewClient(GenerateClientID(), "127.0.0.1", conn, hub)

		if !hub.Add(client) {
			conn.Close() //nolint:errcheck,gosec // test cleanup
			return
		}

		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(server.Close)

	return server
}

func newTestHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub(0)
	hub.RegisterHandler(TypeDetect, DetectHandler(fakeDetect))
	hub.RegisterHandler(TypePing, PingHandler())

	go hub.Run()
	t.Cleanup(func() {
		hub.Shutdown()
		<-hub.Done()
	})

	return hub
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() }) //nolint:errcheck,gosec // test cleanup

	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck,gosec // test timing

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))

	return msg
}

func TestHub_DetectRoundTrip(t *testing.T) {
	hub := newTestHub(t)
	conn := dial(t, newTestServer(t, hub))

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":    "detect",
		"id":      "42",
		"payload": map[string]string{"code": "def main():\n    pass"},
	}))

	msg := readMessage(t, conn)
	assert.Equal(t, TypeLanguage, msg.Type)
	assert.Equal(t, "42", msg.ID)

	var payload LanguagePayload
	require.NoError(t, msg.UnmarshalPayload(&payload))
	assert.Equal(t, "python", payload.Language)
}

func TestHub_UntypedFrameIsDetect(t *testing.T) {
	hub := newTestHub(t)
	conn := dial(t, newTestServer(t, hub))

	require.NoError(t, conn.WriteJSON(map[string]any{
		"payload": map[string]string{"code": "hello"},
	}))

	msg := readMessage(t, conn)
	require.Equal(t, TypeLanguage, msg.Type)

	var payload LanguagePayload
	require.NoError(t, msg.UnmarshalPayload(&payload))
	assert.Equal(t, "plaintext", payload.Language)
}

func TestHub_InvalidFrames(t *testing.T) {
	hub := newTestHub(t)
	conn := dial(t, newTestServer(t, hub))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	assert.Equal(t, TypeError, readMessage(t, conn).Type)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "compile", "id": "7"}))
	msg := readMessage(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Equal(t, "7", msg.ID)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "detect", "id": "8"}))
	msg = readMessage(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Equal(t, "8", msg.ID)
}

func TestHub_Ping(t *testing.T) {
	hub := newTestHub(t)
	conn := dial(t, newTestServer(t, hub))

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "ping", "id": "p1"}))

	msg := readMessage(t, conn)
	assert.Equal(t, TypePong, msg.Type)
	assert.Equal(t, "p1", msg.ID)
}

func TestHub_ShutdownNotifiesClients(t *testing.T) {
	hub := NewHub(0)
	go hub.Run()

	conn := dial(t, newTestServer(t, hub))

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Shutdown()
	hub.Shutdown()

	msg := readMessage(t, conn)
	assert.Equal(t, TypeServerShutdown, msg.Type)

	<-hub.Done()
	assert.Zero(t, hub.ClientCount())
}

func TestHub_UnregisterReleasesIP(t *testing.T) {
	hub := newTestHub(t)
	conn := dial(t, newTestServer(t, hub))

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close() //nolint:errcheck,gosec // closing early on purpose

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	ok, _ := hub.CanAcceptConnection("127.0.0.1")
	assert.True(t, ok)
}

func TestHub_CanAcceptConnection(t *testing.T) {
	hub := NewHub(2)

	hub.TrackIPConnection("10.0.0.1")
	ok, _ := hub.CanAcceptConnection("10.0.0.1")
	assert.True(t, ok)

	hub.TrackIPConnection("10.0.0.1")
	ok, reason := hub.CanAcceptConnection("10.0.0.1")
	assert.False(t, ok)
	assert.NotEmpty(t, reason)

	ok, _ = hub.CanAcceptConnection("10.0.0.2")
	assert.True(t, ok)
}
