package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is one participant's connection plus its routing metadata: the room
// it belongs to and the mark it plays as. The metadata is the only game state
// the transport layer owns.
type Client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	logger *slog.Logger

	mu       sync.Mutex
	closed   bool
	roomCode string
	symbol   string
}

func newClient(id string, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, 32),
		logger: logger,
	}
}

func (that *Client) RoomCode() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.roomCode
}

func (that *Client) SetRoom(code, symbol string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.roomCode = code
	that.symbol = symbol
}

func (that *Client) ClearRoom() {
	that.SetRoom("", "")
}

// Send queues a payload for delivery. Sends are fire and forget: a closed
// client or a full buffer drops the payload so one slow or dead recipient
// never stalls delivery to others or later game-state mutations.
func (that *Client) Send(payload []byte) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	select {
	case that.send <- payload:
	default:
		that.logger.Warn("send buffer full, dropping message", "clientID", that.id)
	}
}

// close releases the send channel exactly once; writePump drains and exits.
func (that *Client) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	that.closed = true
	close(that.send)
}

// writePump moves queued payloads onto the wire and keeps the connection
// alive with pings. One writer goroutine per connection; gorilla permits only
// one concurrent writer.
func (that *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
