package notify

import (
	"sync"

	"github.com/stackit-team/stackit-server/internal/domain"

	"github.com/google/uuid"
)

const subscriberBuffer = 16

// Hub fans created notifications out to live websocket subscribers.
// Delivery is best-effort: a subscriber whose channel is full misses the
// message rather than blocking the writer.
type Hub struct {
	mu sync.RWMutex
	//         map[userID] map[subscriberID] channel
	subs map[string]map[string]chan *domain.Notification
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[string]chan *domain.Notification)}
}

// Subscribe registers a listener for one user's notifications.
func (h *Hub) Subscribe(userID string) (string, <-chan *domain.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan *domain.Notification, subscriberBuffer)
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[string]chan *domain.Notification)
	}
	h.subs[userID][id] = ch
	return id, ch
}

// Unsubscribe removes a listener and closes its channel.
func (h *Hub) Unsubscribe(userID, subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if chans, ok := h.subs[userID]; ok {
		if ch, ok := chans[subscriberID]; ok {
			close(ch)
			delete(chans, subscriberID)
		}
		if len(chans) == 0 {
			delete(h.subs, userID)
		}
	}
}

// Publish delivers a notification to the recipient's subscribers, if any.
func (h *Hub) Publish(n *domain.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs[n.UserID] {
		select {
		case ch <- n:
		default:
		}
	}
}
