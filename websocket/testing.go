package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
	"golang.org/x/net/websocket"
)

// Creates a testing environement to unit test handlers.
func NewTestingEnv(t *testing.T, newHandler func() Handler) (*websocket.Conn, *websocket.Conn, func()) {
	var mutex sync.Mutex
	logger := t.Log

	logs.Encoder = func(v any) ([]byte, error) {
		return json.MarshalIndent(v, "", "  ")
	}

	logs.SetLogger(func(e logs.Entry) {
		mutex.Lock()
		defer mutex.Unlock()

		if logger != nil {
			logger(e)
		}
	})

	errors.Encoder = json.Marshal

	clientA, clientB, close := newTestingEnv(t, newHandler)
	return clientA, clientB, func() {
		mutex.Lock()
		defer mutex.Unlock()
		logger = nil
		close()
	}
}

func newTestingEnv(t *testing.T, newHandler func() Handler) (*websocket.Conn, *websocket.Conn, func()) {
	server := httptest.NewServer(websocket.Server{
		Handshake: func(c *websocket.Config, r *http.Request) error {
			return nil
		},
		Handler: func(conn *websocket.Conn) {
			defer conn.Close()

			handler := newHandler()
			defer handler.Close()

			Handle(context.Background(), conn, handler)
		},
	})

	newConn := func() *websocket.Conn {
		config, err := websocket.NewConfig(
			strings.ReplaceAll(server.URL, "http://", "ws://"),
			"http://localhost",
		)
		if err != nil {
			t.Fatalf("error initializing web socket: %s", err)
		}

		config.Header.Set("User-Agent", "ted")
		config.Header.Set(HeaderClientID, uuid.NewString())

		conn, err := websocket.DialConfig(config)
		if err != nil {
			t.Fatalf("error dialing web socket: %s", err)
		}

		return conn
	}

	clientA := newConn()
	clientB := newConn()

	return clientA, clientB, func() {
		clientA.Close()
		clientB.Close()
		server.Close()
	}
}

func newTestHandler() func() Handler {
	return func() Handler {
		var h Handler = &SessionHandler{
			ClientIdleTimeout: time.Minute,
			MaxPoints:         64,
		}

		h = HandlerWithLogs(h, time.Millisecond*100)
		h = HandlerWithMetrics(h, "https://skipta-test.com")
		return h
	}
}

// SendMsg sends the given message through the given connection.
func SendMsg(t *testing.T, conn *websocket.Conn, msg Msg) {
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("error encoding message: %s", err)
	}

	if err := websocket.Message.Send(conn, string(data)); err != nil {
		t.Fatalf("error sending message: %s", err)
	}
}

// ReceiveMsg returns the next message received from the given connection.
// It fails the test when no message arrives before the given timeout.
func ReceiveMsg(t *testing.T, conn *websocket.Conn, timeout time.Duration) Msg {
	conn.SetReadDeadline(time.Now().Add(timeout))

	var data []byte
	if err := websocket.Message.Receive(conn, &data); err != nil {
		t.Fatalf("error receiving message: %s", err)
	}

	var msg Msg
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("error decoding message: %s", err)
	}
	return msg
}
