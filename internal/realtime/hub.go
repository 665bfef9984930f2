package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"auction-engine/internal/notifier"
	"auction-engine/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Inbound messages from connected viewers.
type inbound struct {
	Type      string `json:"type"`
	AuctionID string `json:"auction_id"`
}

// Outbound messages fanned out to viewers.
type outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Hub owns all websocket connections and per-auction rooms and implements
// the notifier.Notifier contract the engine broadcasts through. Its
// lifecycle belongs to infrastructure; the engine only ever calls into it.
type Hub struct {
	secret []byte

	mu      sync.RWMutex
	clients map[*client]struct{}
	rooms   map[string]map[*client]struct{} // key: auctionID
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub. An empty secret disables token verification, which
// is only intended for local development and tests.
func NewHub(secret string) *Hub {
	return &Hub{
		secret:  []byte(secret),
		clients: make(map[*client]struct{}),
		rooms:   make(map[string]map[*client]struct{}),
	}
}

// BroadcastHighestBid fans the new highest bid out to every connected viewer.
func (h *Hub) BroadcastHighestBid(auctionID string, amount float64) error {
	msg, err := json.Marshal(outbound{
		Type:    "bid_updated",
		Payload: map[string]any{"auction_id": auctionID, "amount": amount},
	})
	if err != nil {
		return fmt.Errorf("realtime: marshal bid update: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.trySend(msg)
	}
	return nil
}

// NotifyRoom fans a notice out to subscribers of one auction room.
func (h *Hub) NotifyRoom(auctionID string, notice notifier.RoomNotice) error {
	msg, err := json.Marshal(outbound{Type: "notify", Payload: notice})
	if err != nil {
		return fmt.Errorf("realtime: marshal room notice: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[auctionID] {
		c.trySend(msg)
	}
	return nil
}

// trySend drops the message when the client's buffer is full; viewers
// recover on the next update.
func (c *client) trySend(msg []byte) {
	select {
	case c.send <- msg:
	default:
	}
}

// ServeWS upgrades an HTTP request to a websocket session. The token comes
// from the "token" query parameter, as the browser client supplies it.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r.URL.Query().Get("token")); err != nil {
		http.Error(w, "authentication error", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Warn("websocket upgrade failed", map[string]any{"error": err.Error()})
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 256)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) authorize(token string) error {
	if len(h.secret) == 0 {
		return nil
	}
	if token == "" {
		return fmt.Errorf("realtime: token not provided")
	}
	_, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return h.secret, nil
	})
	if err != nil {
		return fmt.Errorf("realtime: invalid token: %w", err)
	}
	return nil
}

func (h *Hub) readLoop(c *client) {
	defer h.disconnect(c)

	_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil || msg.AuctionID == "" {
			continue
		}
		switch msg.Type {
		case "join_room":
			h.join(c, msg.AuctionID)
		case "leave_room":
			h.leave(c, msg.AuctionID)
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) join(c *client, auctionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[auctionID]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[auctionID] = room
	}
	room[c] = struct{}{}
}

func (h *Hub) leave(c *client, auctionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[auctionID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, auctionID)
		}
	}
}

func (h *Hub) disconnect(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	for id, room := range h.rooms {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, id)
		}
	}
	h.mu.Unlock()

	close(c.send)
	_ = c.conn.Close()
}
