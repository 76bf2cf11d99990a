package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Screens a UI can subscribe to.
const (
	ScreenPOS     = "pos"
	ScreenKitchen = "kitchen"
)

// Event types
const (
	EventPOSRefresh     = "pos_refresh"
	EventKitchenRefresh = "kitchen_refresh"
	EventDraftUpdate    = "draft_update"
	EventOrderSubmitted = "order_submitted"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func ValidScreen(screen string) bool {
	return screen == ScreenPOS || screen == ScreenKitchen
}

// KDSHub keeps the open screen connections and pushes fresh snapshots to
// them, so UIs do not have to poll the terminal themselves.
type KDSHub struct {
	clients map[*websocket.Conn]string // conn -> screen
	mutex   sync.Mutex
}

func NewHub() *KDSHub {
	return &KDSHub{clients: make(map[*websocket.Conn]string)}
}

func (h *KDSHub) RegisterClient(conn *websocket.Conn, screen string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = screen
	utils.InfoLogger.Debugf("Screen %s connected (%d clients)", screen, len(h.clients))
}

func (h *KDSHub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *KDSHub) ClientCount(screen string) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	n := 0
	for _, s := range h.clients {
		if s == screen {
			n++
		}
	}
	return n
}

func (h *KDSHub) BroadcastPOSRefresh(state interface{}) {
	h.Broadcast(ScreenPOS, Message{Event: EventPOSRefresh, Data: state})
}

func (h *KDSHub) BroadcastKitchenRefresh(tickets interface{}) {
	h.Broadcast(ScreenKitchen, Message{Event: EventKitchenRefresh, Data: tickets})
}

func (h *KDSHub) BroadcastDraftUpdate(draft interface{}) {
	h.Broadcast(ScreenPOS, Message{Event: EventDraftUpdate, Data: draft})
}

// BroadcastOrderSubmitted tells both screens a KOT went out: the POS to
// show the new order state and the kitchen to expect new tickets.
func (h *KDSHub) BroadcastOrderSubmitted(draft interface{}) {
	msg := Message{Event: EventOrderSubmitted, Data: draft}
	h.Broadcast(ScreenPOS, msg)
	h.Broadcast(ScreenKitchen, msg)
}

// Broadcast sends msg to every client of screen. Clients that cannot be
// written to are dropped.
func (h *KDSHub) Broadcast(screen string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, s := range h.clients {
		if s != screen {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending %s to %s client: %v", msg.Event, screen, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// CloseAll disconnects every client, used on shutdown.
func (h *KDSHub) CloseAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(h.clients, conn)
	}
}
