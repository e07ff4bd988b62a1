package web

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/example/parkboard/internal/render"
)

// Hub fans the kiosk framebuffer out to websocket viewers. A browser
// pointed at /ws sees exactly what the panel shows.
type Hub struct {
	w, h, fps int

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub(w, h, fps int) *Hub {
	return &Hub{w: w, h: h, fps: fps, clients: map[*websocket.Conn]bool{}}
}

type topologyMsg struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	FPS    int    `json:"fps"`
}

// HandleWS upgrades the connection, sends the display topology, then
// streams binary RGB frames until the client goes away.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	topo, _ := json.Marshal(topologyMsg{Type: "topology", Width: h.w, Height: h.h, FPS: h.fps})
	if err := conn.WriteMessage(websocket.TextMessage, topo); err != nil {
		conn.Close()
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	n := len(h.clients)
	h.mu.Unlock()
	log.Info().Int("viewers", n).Msg("frame viewer connected")

	// Reader goroutine only notices disconnects; viewers never send.
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Publish sends one packed RGB frame to every viewer. Slow or dead
// clients are dropped rather than allowed to stall the render loop.
func (h *Hub) Publish(f *render.Frame) {
	buf := f.RGBBytes()
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.BinaryMessage, buf); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// Viewers reports the connected client count.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
