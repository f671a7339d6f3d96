package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/playrooms/tictactoe-server/internal/pkg"
	"github.com/playrooms/tictactoe-server/internal/usecase"
)

type gameManager interface {
	CreateRoom(ctx context.Context, ownerID, mode string) (*usecase.RoomUpdate, error)
	JoinRoom(ctx context.Context, code, joinerID string) (*usecase.RoomUpdate, error)
	MakeMove(ctx context.Context, code, playerID string, cell int) (*usecase.RoomUpdate, error)
	ResetMatch(ctx context.Context, code string) (*usecase.RoomUpdate, error)
	HandleDisconnect(ctx context.Context, code, playerID string) []string
	HasRoom(code string) bool
}

// Server is the session protocol handler: it owns the connection set and
// dispatches inbound messages by their type discriminator.
type Server struct {
	logger      *slog.Logger
	gameManager gameManager
	upgrader    websocket.Upgrader

	handlers map[string]func(ctx context.Context, client *Client, message *Message) error

	clientsMutex sync.RWMutex
	clients      map[string]*Client
}

func New(logger *slog.Logger, manager gameManager) *Server {
	server := &Server{
		logger:      logger,
		gameManager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
		handlers: make(map[string]func(context.Context, *Client, *Message) error),
		clients:  make(map[string]*Client),
	}

	server.handlers[actionCreateRoom] = server.handleCreateRoom
	server.handlers[actionJoinRoom] = server.handleJoinRoom
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionReset] = server.handleReset

	return server
}

// Start - starts the WebSocket server and shuts it down when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection upgrades the request and runs the connection's read loop
// until the peer goes away.
func (that *Server) serveConnection(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newClient(pkg.GenerateNewSessionID(), conn, that.logger)

	that.clientsMutex.Lock()
	that.clients[client.id] = client
	that.clientsMutex.Unlock()

	go client.writePump()

	log.Info("WebSocket connection established", "clientID", client.id)

	that.readLoop(ctx, client)
	that.dropClient(ctx, client)
}

// readLoop - processes messages from the client until the connection closes.
// A single connection's bad input never terminates the process: malformed
// payloads are rejected to the sender and the loop continues.
func (that *Server) readLoop(ctx context.Context, client *Client) {
	log := that.logger.With("method", "readLoop", "clientID", client.id)

	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, reqBody, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("unexpected close", "error", err)
			}

			return
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			client.Send(newErrorMessage("Invalid message."))

			continue
		}

		handler, ok := that.handlers[message.Type]
		if !ok {
			log.Warn("unknown message type", "type", message.Type)
			client.Send(newErrorMessage("Invalid payload."))

			continue
		}

		if err = handler(ctx, client, &message); err != nil {
			log.Error("error processing message", "type", message.Type, "error", err)
		}
	}
}

// dropClient runs the cleanup protocol for a closed connection: remove the
// room, notify every other participant once, and evict them from the room.
func (that *Server) dropClient(ctx context.Context, client *Client) {
	log := that.logger.With("method", "dropClient", "clientID", client.id)

	that.clientsMutex.Lock()
	delete(that.clients, client.id)
	that.clientsMutex.Unlock()

	client.close()

	code := client.RoomCode()
	if code == "" {
		log.Info("client disconnected")
		return
	}

	for _, playerID := range that.gameManager.HandleDisconnect(ctx, code, client.id) {
		that.clientsMutex.RLock()
		opponent, ok := that.clients[playerID]
		that.clientsMutex.RUnlock()

		if !ok {
			continue
		}

		opponent.ClearRoom()
		opponent.Send(newOpponentLeftMessage())
	}

	log.Info("client disconnected, room removed", "roomCode", code)
}

// broadcast delivers a payload to every listed participant still connected.
func (that *Server) broadcast(playerIDs []string, payload []byte) {
	for _, playerID := range playerIDs {
		that.clientsMutex.RLock()
		client, ok := that.clients[playerID]
		that.clientsMutex.RUnlock()

		if !ok {
			continue
		}

		client.Send(payload)
	}
}
