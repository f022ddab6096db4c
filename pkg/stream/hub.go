package stream

import (
	"sync"

	"github.com/gorilla/websocket"
)

// subscriber is one connected client with its outbound queue.
type subscriber struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks the set of connected subscribers and broadcasts frames to all
// of them. Delivery is best effort: a subscriber whose queue is full is
// dropped so it cannot stall the broadcast loop.
type Hub struct {
	mu sync.RWMutex

	subs       map[*subscriber]struct{}
	register   chan *subscriber
	unregister chan *subscriber
	broadcast  chan []byte
	done       chan struct{}
}

func newHub() *Hub {
	h := &Hub{
		subs:       make(map[*subscriber]struct{}),
		register:   make(chan *subscriber, 16),
		unregister: make(chan *subscriber, 16),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			return
		case sub := <-h.register:
			h.mu.Lock()
			h.subs[sub] = struct{}{}
			h.mu.Unlock()
		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.subs[sub]; ok {
				delete(h.subs, sub)
				close(sub.send)
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.RLock()
			var slow []*subscriber
			for sub := range h.subs {
				select {
				case sub.send <- msg:
				default:
					// Subscriber can't keep up: kick it
					slow = append(slow, sub)
				}
			}
			h.mu.RUnlock()
			for _, sub := range slow {
				h.unregister <- sub
			}
		}
	}
}

// Broadcast queues a message for all subscribers. If the broadcast queue is
// full the message is dropped; the next tick supersedes it anyway.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) add(sub *subscriber) {
	h.register <- sub
}

func (h *Hub) remove(sub *subscriber) {
	h.unregister <- sub
}

func (h *Hub) close() {
	close(h.done)
	h.mu.Lock()
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.send)
	}
	h.mu.Unlock()
}
