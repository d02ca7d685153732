package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Hub fans ledger updates out to every connected websocket client.
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	quit       chan struct{}
	log        *zap.Logger
}

// queueSize bounds the broadcasts waiting for Run.
const queueSize = 256

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, queueSize),
		quit:       make(chan struct{}),
		log:        log.Named("ws"),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			n := len(h.Clients)
			h.mutex.Unlock()
			h.log.Debug("client connected", zap.Int("clients", n))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.log.Debug("dropping client", zap.Error(err))
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()

		case <-h.quit:
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return
		}
	}
}

// Stop ends Run and closes all clients. Publish after Stop is dropped.
func (h *Hub) Stop() {
	close(h.quit)
}

// Publish encodes payload as JSON and queues it for broadcast without
// blocking the caller. Messages go out in publish order; when the queue is
// full the message is dropped.
func (h *Hub) Publish(payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		h.log.Warn("encode broadcast", zap.Error(err))
		return
	}
	select {
	case <-h.quit:
		return
	default:
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.log.Warn("broadcast queue full, dropping message", zap.Int("queued", len(h.Broadcast)))
	}
}

// Serve is the websocket handler body: it registers conn and blocks reading
// until the client goes away.
func (h *Hub) Serve(conn *websocket.Conn) {
	select {
	case h.Register <- conn:
	case <-h.quit:
		return
	}
	defer func() {
		select {
		case h.Unregister <- conn:
		case <-h.quit:
		}
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
