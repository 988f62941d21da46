package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

type Message struct {
	Type      string          `json:"type"`
	ID        string          `json:"id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// snippets sent one after another; the server answers each with a language frame
var samples = []string{
	"def greet(name):\n    print(name)\n",
	"#include <iostream>\nint main() { std::cout << 1; }\n",
	"#include <stdio.h>\nint main(void) { return 0; }\n",
	"import java.util.List;\nclass A {}\n",
	"// just a comment\n",
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run test_websocket.go <api_key> [host]")
		fmt.Println("Example: go run test_websocket.go s3cret localhost:5000")
		os.Exit(1)
	}

	apiKey := os.Args[1]

	host := "localhost:5000"
	if len(os.Args) > 2 {
		host = os.Args[2]
	}

	// build WebSocket URL
	u := url.URL{
		Scheme: "ws",
		Host:   host,
		Path:   "/ws/detect",
	}
	q := u.Query()
	q.Set("api_key", apiKey)
	u.RawQuery = q.Encode()

	fmt.Printf("Connecting to %s://%s%s\n", u.Scheme, u.Host, u.Path)

	// connect
	c, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		if resp != nil {
			log.Fatalf("dial: %v (status %d)", err, resp.StatusCode)
		}
		log.Fatal("dial:", err)
	}
	defer c.Close()

	fmt.Println("✅ Connected to WebSocket!")

	// handle interrupt
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})
	received := make(chan struct{}, len(samples))

	// read messages
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("read:", err)
				return
			}
			fmt.Printf("📨 Received: %s\n", message)
			received <- struct{}{}
		}
	}()

	for i, code := range samples {
		payload, _ := json.Marshal(map[string]string{"code": code})
		frame, _ := json.Marshal(Message{
			Type:      "detect",
			ID:        fmt.Sprintf("sample-%d", i+1),
			Timestamp: time.Now(),
			Payload:   payload,
		})

		fmt.Printf("📤 Sending: %s\n", frame)
		if err := c.WriteMessage(websocket.TextMessage, frame); err != nil {
			log.Println("write:", err)
			return
		}

		select {
		case <-received:
		case <-done:
			return
		case <-time.After(5 * time.Second):
			log.Println("no reply within 5s")
		}
	}

	fmt.Println("All samples answered; press Ctrl+C to disconnect")

	// wait for interrupt or done
	select {
	case <-done:
		return
	case <-interrupt:
		fmt.Println("\n🛑 Interrupt received, closing connection...")

		// cleanly close the connection
		err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("write close:", err)
			return
		}
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
