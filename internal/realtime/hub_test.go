package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"auction-engine/internal/notifier"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "viewer1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// Test authorize
func TestHub_Authorize(t *testing.T) {
	t.Parallel()

	t.Run("valid token", func(t *testing.T) {
		t.Parallel()
		hub := NewHub("test-secret")
		require.NoError(t, hub.authorize(signedToken(t, "test-secret")))
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		hub := NewHub("test-secret")
		require.Error(t, hub.authorize(signedToken(t, "other-secret")))
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()
		hub := NewHub("test-secret")
		require.Error(t, hub.authorize(""))
	})

	t.Run("empty secret disables verification", func(t *testing.T) {
		t.Parallel()
		hub := NewHub("")
		require.NoError(t, hub.authorize(""))
	})
}

func dialHub(t *testing.T, hub *Hub, query string) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readOutbound(t *testing.T, conn *websocket.Conn) outbound {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg outbound
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

// Test BroadcastHighestBid
func TestHub_BroadcastHighestBid(t *testing.T) {
	t.Parallel()

	hub := NewHub("")
	conn := dialHub(t, hub, "")

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.BroadcastHighestBid("auction1", 700))

	msg := readOutbound(t, conn)
	require.Equal(t, "bid_updated", msg.Type)

	payload := msg.Payload.(map[string]any)
	require.Equal(t, "auction1", payload["auction_id"])
	require.Equal(t, 700.0, payload["amount"])
}

// Test NotifyRoom
func TestHub_NotifyRoom(t *testing.T) {
	t.Parallel()

	hub := NewHub("test-secret")
	conn := dialHub(t, hub, "?token="+signedToken(t, "test-secret"))

	require.NoError(t, conn.WriteJSON(inbound{Type: "join_room", AuctionID: "auction1"}))

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.rooms["auction1"]) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.NotifyRoom("auction1", notifier.RoomNotice{
		Title:     "1967 Mustang Fastback",
		Amount:    700,
		AuctionID: "auction1",
	}))

	msg := readOutbound(t, conn)
	require.Equal(t, "notify", msg.Type)

	payload := msg.Payload.(map[string]any)
	require.Equal(t, "auction1", payload["auction_id"])
	require.Equal(t, 700.0, payload["amount"])

	// a notice for another room never reaches this viewer
	require.NoError(t, hub.NotifyRoom("auction2", notifier.RoomNotice{AuctionID: "auction2"}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err, "nothing should arrive for an unjoined room")
}

// Test rejected upgrade
func TestHub_ServeWS_Unauthorized(t *testing.T) {
	t.Parallel()

	hub := NewHub("test-secret")
	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?token=not-a-jwt"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
