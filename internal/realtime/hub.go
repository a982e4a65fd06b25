package realtime

import (
	"sync"

	"github.com/google/uuid"
)

const subscriberBuffer = 8

// Hub fans complete snapshot frames out to topic subscribers. Each frame
// replaces the previous one entirely, so dropping a frame for a slow consumer
// is safe: the next frame carries the full state again.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[string]chan []byte
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[string]chan []byte)}
}

// Subscribe registers a new subscriber on a topic and returns its id and
// receive channel. The caller must Unsubscribe with the returned id when done.
func (h *Hub) Subscribe(topic string) (string, <-chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan []byte, subscriberBuffer)
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[string]chan []byte)
	}
	h.topics[topic][id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel
func (h *Hub) Unsubscribe(topic, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[topic]
	if !ok {
		return
	}
	if ch, ok := subs[id]; ok {
		close(ch)
		delete(subs, id)
	}
	if len(subs) == 0 {
		delete(h.topics, topic)
	}
}

// Broadcast delivers a frame to every subscriber of a topic. Subscribers
// whose buffers are full skip the frame rather than block the sender.
func (h *Hub) Broadcast(topic string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.topics[topic] {
		select {
		case ch <- payload:
		default:
		}
	}
}

// SubscriberCount reports how many subscribers a topic currently has
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
