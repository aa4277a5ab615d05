package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/utcsmart/homelink-core/internal/auth"
	"github.com/utcsmart/homelink-core/internal/bridge"
	"github.com/utcsmart/homelink-core/internal/device"
	"github.com/utcsmart/homelink-core/internal/infrastructure/config"
	"github.com/utcsmart/homelink-core/internal/infrastructure/logging"
)

// Push-channel event names.
const (
	EventSensorUpdate = "sensor-update"
	EventDeviceStatus = "device-status"
	EventError        = "error"

	// wsSendBufferSize is the per-client outbound message buffer size.
	wsSendBufferSize = 64
)

// WSMessage is the envelope for every push-channel message in either
// direction. Clients send {event} command messages; the server sends
// {event, timestamp, payload} broadcasts.
type WSMessage struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp,omitempty"`
	Payload   any    `json:"payload,omitempty"`
}

// Hub manages the set of connected push-channel clients and fan-out
// broadcast. It is a pure transport multiplexer; all business logic lives
// in the bridge controller. Hub satisfies bridge.Broadcaster.
type Hub struct {
	cfg     config.WebSocketConfig
	logger  *logging.Logger
	clients map[*WSClient]struct{}
	mu      sync.RWMutex
}

// WSClient represents a connected push-channel client.
type WSClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// email is the authenticated session identity, fixed at upgrade time.
	email string

	// token is the session credential presented at upgrade. It is
	// re-verified on every command so a logout revokes command rights on
	// connections that are already open.
	token    string
	sessions *auth.Service

	// commands receives the client's device command event names.
	commands *bridge.Controller
}

// upgrader configures the WebSocket upgrader. Origin checking is handled
// by the CORS middleware.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// NewHub creates a new WebSocket hub.
func NewHub(cfg config.WebSocketConfig, logger *logging.Logger) *Hub {
	return &Hub{
		cfg:     cfg,
		logger:  logger,
		clients: make(map[*WSClient]struct{}),
	}
}

// Run blocks until the context is cancelled, then disconnects all clients.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
}

// Register adds a client to the active set.
func (h *Hub) Register(client *WSClient) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", "email", client.email, "clients", h.ClientCount())
}

// Unregister removes a client from the active set. Idempotent: only the
// goroutine that actually removes the client closes the send channel,
// preventing double-close panics during shutdown.
func (h *Hub) Unregister(client *WSClient) {
	h.mu.Lock()
	_, existed := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()

	if existed {
		close(client.send)
	}
	h.logger.Debug("websocket client disconnected", "clients", h.ClientCount())
}

// BroadcastSensorUpdate fans the sensor snapshot out to every client.
func (h *Hub) BroadcastSensorUpdate(update bridge.SensorUpdate) {
	h.broadcast(EventSensorUpdate, update)
}

// BroadcastDeviceStatus fans the actuator snapshot out to every client.
func (h *Hub) BroadcastDeviceStatus(status device.ActuatorSnapshot) {
	h.broadcast(EventDeviceStatus, status)
}

// broadcast sends an event to every connected client. Delivery is
// best-effort: a slow or disconnected client is skipped, never waited on.
func (h *Hub) broadcast(event string, payload any) {
	data, err := marshalEvent(event, payload)
	if err != nil {
		h.logger.Error("failed to marshal broadcast message", "event", event, "error", err)
		return
	}

	// Snapshot the client list under the hub lock, release before sending.
	h.mu.RLock()
	clients := make([]*WSClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		client.trySend(data)
	}
	if len(clients) > 0 {
		h.logger.Debug("broadcast sent", "event", event, "recipients", len(clients))
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// closeAll disconnects all clients and closes their send channels so
// writePump goroutines can exit cleanly.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
		if client.conn != nil {
			client.conn.Close()
		}
		delete(h.clients, client)
	}
}

// marshalEvent builds the wire form of a server-to-client event.
func marshalEvent(event string, payload any) ([]byte, error) {
	return json.Marshal(WSMessage{
		Event:     event,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   payload,
	})
}

// handleWebSocket upgrades the HTTP connection to a WebSocket connection.
//
// A verified session token is required as a query parameter, so every
// command arriving on the connection carries an authenticated identity.
// After registration the new client alone receives the current sensor and
// device snapshots; other clients see no traffic.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeUnauthorized(w, "token query parameter is required")
		return
	}
	claims, err := s.auth.Verify(token)
	if err != nil {
		writeUnauthorized(w, "invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &WSClient{
		hub:      s.hub,
		conn:     conn,
		send:     make(chan []byte, wsSendBufferSize),
		email:    claims.Email,
		token:    token,
		sessions: s.auth,
		commands: s.bridge,
	}

	s.hub.Register(client)
	s.hydrateClient(client)

	go client.writePump(s.wsCfg)
	go client.readPump(s.wsCfg)
}

// hydrateClient sends the current state snapshots to a newly connected
// client only.
func (s *Server) hydrateClient(client *WSClient) {
	if data, err := marshalEvent(EventSensorUpdate, s.bridge.SensorUpdatePayload()); err == nil {
		client.trySend(data)
	}
	if data, err := marshalEvent(EventDeviceStatus, s.bridge.DeviceStatusPayload()); err == nil {
		client.trySend(data)
	}
}

// readPump reads messages from the WebSocket connection.
func (c *WSClient) readPump(cfg config.WebSocketConfig) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(int64(cfg.MaxMessageSize))
	pingInterval := time.Duration(cfg.PingInterval) * time.Second
	pongWait := time.Duration(cfg.PongTimeout) * time.Second
	//nolint:errcheck // Best-effort deadline on connection setup
	c.conn.SetReadDeadline(time.Now().Add(pingInterval + pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pingInterval + pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read error", "error", err)
			} else {
				c.hub.logger.Debug("websocket closed", "error", err)
			}
			return
		}
		// Any client message resets the read deadline (keeps the
		// connection alive even if the browser never answers pings).
		//nolint:errcheck // Best-effort deadline reset
		c.conn.SetReadDeadline(time.Now().Add(pingInterval + pongWait))
		c.handleMessage(message)
	}
}

// writePump writes messages to the WebSocket connection.
func (c *WSClient) writePump(cfg config.WebSocketConfig) {
	pingInterval := time.Duration(cfg.PingInterval) * time.Second
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	pongWait := time.Duration(cfg.PongTimeout) * time.Second

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				// Hub closed the channel
				//nolint:errcheck // Best-effort close message
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			//nolint:errcheck // Best-effort deadline; write error caught below
			c.conn.SetWriteDeadline(time.Now().Add(pongWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			//nolint:errcheck // Best-effort deadline; ping error caught below
			c.conn.SetWriteDeadline(time.Now().Add(pongWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming client message: a device command
// event by name (light-on, door-close, ...). Unknown or invalid commands
// are answered with an error event on the same connection.
//
// The session token is re-verified per command: a connection whose token
// has expired or been revoked since the upgrade keeps receiving
// broadcasts but may no longer command devices.
func (c *WSClient) handleMessage(data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError("invalid JSON message")
		return
	}

	if _, err := c.sessions.Verify(c.token); err != nil {
		c.hub.logger.Info("command rejected, session no longer valid", "email", c.email, "error", err)
		c.sendError("session expired or revoked")
		return
	}

	if err := c.commands.HandleCommand(msg.Event); err != nil {
		if errors.Is(err, bridge.ErrUnknownCommand) || errors.Is(err, bridge.ErrInvalidCommand) {
			c.sendError(err.Error())
			return
		}
		c.hub.logger.Warn("command dispatch failed", "event", msg.Event, "email", c.email, "error", err)
		c.sendError("command failed")
		return
	}

	c.hub.logger.Info("device command", "event", msg.Event, "email", c.email)
}

// trySend attempts to send data to the client's send channel. It silently
// handles closed channels (client disconnected during broadcast) and full
// buffers (slow client).
func (c *WSClient) trySend(data []byte) {
	defer func() {
		recover() //nolint:errcheck // Absorb send-on-closed-channel panic
	}()

	select {
	case c.send <- data:
	default:
		// Client buffer full, skip
	}
}

// sendError sends an error event to this client only.
func (c *WSClient) sendError(message string) {
	data, err := marshalEvent(EventError, map[string]string{"message": message})
	if err != nil {
		return
	}
	c.trySend(data)
}
