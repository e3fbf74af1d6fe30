package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Benjaminlucky/pcrl/handlers/auth"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers connect from the marketing site's origin; auth happens
	// via the bearer token, not the Origin header.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks live admin connections and broadcasts notification events
// to all of them.
type Hub struct {
	mu     sync.Mutex
	admins map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{admins: make(map[*websocket.Conn]struct{})}
}

// ServeWS upgrades an authenticated admin request and joins the
// connection to the admins room until it closes.
func (h *Hub) ServeWS(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok || !principal.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.register(conn)

	// Read loop exists only to notice the peer going away.
	go func() {
		defer h.unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// HasAdmins reports whether any admin connection is currently live.
func (h *Hub) HasAdmins() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.admins) > 0
}

// BroadcastToAdmins sends a JSON payload to every connected admin and
// returns how many connections received it. Dead connections are dropped
// on write failure.
func (h *Hub) BroadcastToAdmins(payload interface{}) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for conn := range h.admins {
		if err := conn.WriteJSON(payload); err != nil {
			conn.Close()
			delete(h.admins, conn)
			continue
		}
		sent++
	}
	return sent
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.admins[conn] = struct{}{}
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.admins[conn]; ok {
		conn.Close()
		delete(h.admins, conn)
	}
}
