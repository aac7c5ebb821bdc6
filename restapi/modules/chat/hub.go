// Package chat implements the realtime discussion relay: per-asteroid rooms
// with a bounded in-memory history. Nothing here survives a restart.
package chat

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// historyLimit caps the per-room message buffer; the oldest message is
// dropped when a room overflows.
const historyLimit = 100

// Message is one chat message in an asteroid discussion room.
type Message struct {
	ID         string    `json:"id"`
	AsteroidID string    `json:"asteroidId"`
	Username   string    `json:"username"`
	Avatar     *string   `json:"avatar"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// envelope is the wire frame for both directions.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

type client struct {
	send  chan []byte
	rooms map[string]struct{}
}

// Hub relays messages between websocket clients grouped into per-asteroid
// rooms. It is a process-wide singleton; multiple backend instances would
// split rooms per instance.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	rooms   map[string]map[*client]struct{}
	history map[string][]Message
	logger  *zap.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		rooms:   make(map[string]map[*client]struct{}),
		history: make(map[string][]Message),
		logger:  logger.With(zap.String("component", "chat-hub")),
	}
}

// ConnectionCount returns the number of live websocket connections; it
// feeds the public stats endpoint.
func (h *Hub) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// BroadcastAll pushes an event to every connected client regardless of
// room membership. Used for system-wide hazard alerts.
func (h *Hub) BroadcastAll(event string, payload interface{}) {
	frame, err := json.Marshal(outbound{Event: event, Data: payload})
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.deliver(frame)
	}
}

// Serve runs the read loop for one websocket connection until it closes.
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &client{
		send:  make(chan []byte, 64),
		rooms: make(map[string]struct{}),
	}
	h.register(c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for frame := range c.send {
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		h.dispatch(c, raw)
	}

	// Unregister before closing the channel so no broadcast can write to a
	// closed channel.
	h.unregister(c)
	close(c.send)
	<-done
}

func (h *Hub) dispatch(c *client, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.logger.Debug("dropping unparseable frame", zap.Error(err))
		return
	}

	switch env.Event {
	case "join-room":
		var asteroidID string
		if err := json.Unmarshal(env.Data, &asteroidID); err != nil || asteroidID == "" {
			return
		}
		h.joinRoom(c, asteroidID)
	case "leave-room":
		var asteroidID string
		if err := json.Unmarshal(env.Data, &asteroidID); err != nil || asteroidID == "" {
			return
		}
		h.leaveRoom(c, asteroidID)
	case "send-message":
		var req struct {
			AsteroidID string  `json:"asteroidId"`
			Message    string  `json:"message"`
			Username   string  `json:"username"`
			Avatar     *string `json:"avatar"`
		}
		if err := json.Unmarshal(env.Data, &req); err != nil || req.AsteroidID == "" {
			return
		}
		h.sendMessage(c, req.AsteroidID, req.Message, req.Username, req.Avatar)
	default:
		h.logger.Debug("unknown chat event", zap.String("event", env.Event))
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range c.rooms {
		delete(h.rooms[room], c)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(h.clients, c)
}

func (h *Hub) joinRoom(c *client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	c.rooms[room] = struct{}{}

	history := h.history[room]
	if history == nil {
		history = []Message{}
	}
	c.send1(outbound{Event: "room-messages", Data: history})

	h.notifyRoomLocked(room, c, "user-joined", "A new user joined the discussion")
}

func (h *Hub) leaveRoom(c *client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(c.rooms, room)
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}

	h.notifyRoomLocked(room, c, "user-left", "A user left the discussion")
}

func (h *Hub) sendMessage(c *client, room, text, username string, avatar *string) {
	if username == "" {
		username = "Anonymous"
	}
	msg := Message{
		ID:         uuid.NewString(),
		AsteroidID: room,
		Username:   username,
		Avatar:     avatar,
		Message:    text,
		Timestamp:  time.Now().UTC(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.appendHistoryLocked(room, msg)

	frame, err := json.Marshal(outbound{Event: "new-message", Data: msg})
	if err != nil {
		return
	}
	// Sender included: everyone in the room sees the message once.
	for member := range h.rooms[room] {
		member.deliver(frame)
	}
}

func (h *Hub) appendHistoryLocked(room string, msg Message) {
	history := append(h.history[room], msg)
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	h.history[room] = history
}

// notifyRoomLocked sends a presence event to every room member except the
// originator. Caller holds h.mu.
func (h *Hub) notifyRoomLocked(room string, origin *client, event, text string) {
	payload := struct {
		Message   string    `json:"message"`
		Timestamp time.Time `json:"timestamp"`
	}{Message: text, Timestamp: time.Now().UTC()}

	frame, err := json.Marshal(outbound{Event: event, Data: payload})
	if err != nil {
		return
	}
	for member := range h.rooms[room] {
		if member == origin {
			continue
		}
		member.deliver(frame)
	}
}

// deliver drops the frame when the client's buffer is full rather than
// blocking the hub on a slow reader.
func (c *client) deliver(frame []byte) {
	select {
	case c.send <- frame:
	default:
	}
}

func (c *client) send1(msg outbound) {
	if frame, err := json.Marshal(msg); err == nil {
		c.deliver(frame)
	}
}
