// Package ws pushes order updates to websocket subscribers, one room per order.
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"canteen/internal/models"
)

const EventOrderStatus = "order.status"

type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type orderEvent struct {
	orderID primitive.ObjectID
	message []byte
}

// Hub tracks the clients watching each order and fans out events to them.
type Hub struct {
	rooms map[primitive.ObjectID]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan orderEvent
	done       chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[primitive.ObjectID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan orderEvent, 256),
		done:       make(chan struct{}),
	}
}

// Run owns the room table until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for orderID, clients := range h.rooms {
				for client := range clients {
					close(client.send)
				}
				delete(h.rooms, orderID)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.orderID] == nil {
				h.rooms[client.orderID] = make(map[*Client]bool)
			}
			h.rooms[client.orderID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			for client := range h.rooms[event.orderID] {
				select {
				case client.send <- event.message:
				default:
					// slow consumer
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.rooms[client.orderID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.orderID)
	}
}

// OrderUpdated queues the order for every client watching it. It never
// blocks the caller: when the queue is full or the hub has stopped the event
// is dropped.
func (h *Hub) OrderUpdated(order models.Order) {
	message, err := encodeOrder(order)
	if err != nil {
		zap.L().Error("[WS] encoding order event", zap.String("orderId", order.ID.Hex()), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- orderEvent{orderID: order.ID, message: message}:
	case <-h.done:
	default:
		zap.L().Warn("[WS] broadcast queue full, dropping event", zap.String("orderId", order.ID.Hex()))
	}
}

// Subscribers reports how many clients are watching orderID.
func (h *Hub) Subscribers(orderID primitive.ObjectID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[orderID])
}

func encodeOrder(order models.Order) ([]byte, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: EventOrderStatus, Payload: payload})
}
