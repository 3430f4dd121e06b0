package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// authTimeout is how long a client has to send its token after
	// connecting before the socket is closed.
	authTimeout = 5 * time.Second

	pingInterval   = 30 * time.Second
	pongWait       = 60 * time.Second
	writeWait      = 10 * time.Second
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict origins once the web client's domain is fixed.
		return true
	},
}

// AuthFunc validates a token and returns the user id and role type.
type AuthFunc func(token string) (userID int64, userType int, err error)

// MessageHandler is called for every typed message a client sends.
type MessageHandler func(client *Client, messageType string, data json.RawMessage) error

// Client is one WebSocket connection.
type Client struct {
	ID       string
	UserID   int64
	UserType int
	conn     *websocket.Conn
	send     chan []byte
	sendMu   sync.Mutex
	closed   bool
	hub      *Hub
	log      *logger.Logger
}

// trySend queues a message unless the client's channel is closed or full.
// The mutex orders sends against closeSend; without it a SendJSON racing the
// hub's slow-consumer drop would write to a closed channel.
func (c *Client) trySend(msg []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel exactly once.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// SendJSON queues a message for this client only.
func (c *Client) SendJSON(data any) error {
	msg, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if !c.trySend(msg) {
		c.log.Warn(logger.Entry{Action: "ws_client_send_full", Message: c.ID})
	}
	return nil
}

// Hub manages all live WebSocket connections. Clients authenticate with a
// first-message JWT; unauthenticated sockets are dropped after authTimeout.
type Hub struct {
	clients        map[string]*Client
	mu             sync.RWMutex
	register       chan *Client
	unregister     chan *Client
	broadcast      chan []byte
	authFunc       AuthFunc
	messageHandler MessageHandler
	log            *logger.Logger
}

func NewHub(authFunc AuthFunc, log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client, 10),
		unregister: make(chan *Client, 10),
		broadcast:  make(chan []byte, 256),
		authFunc:   authFunc,
		log:        log,
	}
}

// SetMessageHandler installs the handler for inbound client messages.
func (h *Hub) SetMessageHandler(handler MessageHandler) {
	h.messageHandler = handler
}

// Run is the hub's main loop; start it in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.log.Info(logger.Entry{Action: "hub_stopped", Message: "websocket hub stopped"})
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.log.Info(logger.Entry{
				Action:  "client_registered",
				Message: client.ID,
				Additional: map[string]any{
					"user_id":   client.UserID,
					"user_type": client.UserType,
				},
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
			}
			h.mu.Unlock()
			client.closeSend()
			h.log.Info(logger.Entry{
				Action:  "client_unregistered",
				Message: client.ID,
			})

		case message := <-h.broadcast:
			h.mu.Lock()
			var dropped []*Client
			for _, client := range h.clients {
				if !client.trySend(message) {
					// slow consumer, drop it
					delete(h.clients, client.ID)
					dropped = append(dropped, client)
				}
			}
			h.mu.Unlock()
			for _, client := range dropped {
				client.closeSend()
			}
		}
	}
}

// Broadcast queues a message for every connected client.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.log.Error(logger.Entry{
			Action:  "broadcast_dropped",
			Message: "broadcast channel full",
		})
	}
}

// BroadcastJSON marshals data and broadcasts it.
func (h *Hub) BroadcastJSON(data any) error {
	msg, err := json.Marshal(data)
	if err != nil {
		return err
	}
	h.Broadcast(msg)
	return nil
}

// ServeWS upgrades the HTTP request and runs the auth handshake.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error(logger.Entry{
			Action:  "ws_upgrade_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 256),
		hub:  h,
		log:  h.log,
	}

	_ = conn.SetReadDeadline(time.Now().Add(authTimeout))

	var authMsg struct {
		Token string `json:"token"`
	}
	if err := conn.ReadJSON(&authMsg); err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseProtocolError, "auth timeout"))
		_ = conn.Close()
		h.log.Warn(logger.Entry{
			Action:  "ws_auth_failed",
			Message: "no auth message received",
		})
		return
	}

	userID, userType, err := h.authFunc(authMsg.Token)
	if err != nil {
		_ = conn.WriteJSON(map[string]string{"error": "invalid token"})
		_ = conn.Close()
		h.log.Warn(logger.Entry{
			Action:  "ws_auth_invalid_token",
			Message: err.Error(),
		})
		return
	}

	client.UserID = userID
	client.UserType = userType

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	h.register <- client

	_ = conn.WriteJSON(map[string]any{"status": "authenticated", "user_id": userID})

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Error(logger.Entry{
					Action:  "ws_read_error",
					Message: c.ID,
					Error:   &logger.ErrObj{Msg: err.Error()},
				})
			}
			break
		}

		var msg struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data,omitempty"`
		}
		if err := json.Unmarshal(message, &msg); err != nil {
			c.log.Warn(logger.Entry{
				Action:  "ws_parse_message_error",
				Message: err.Error(),
				Additional: map[string]any{
					"client_id": c.ID,
				},
			})
			continue
		}

		if c.hub.messageHandler != nil {
			if err := c.hub.messageHandler(c, msg.Type, msg.Data); err != nil {
				c.log.Error(logger.Entry{
					Action:  "ws_handle_message_error",
					Message: err.Error(),
					Error:   &logger.ErrObj{Msg: err.Error()},
					Additional: map[string]any{
						"client_id": c.ID,
						"msg_type":  msg.Type,
					},
				})
			}
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
