// Package stream keeps the registry of live push-channel subscribers.
package stream

import (
	"sync"

	"github.com/fonarev/gopherwallet.git/internal/logger"
	"github.com/fonarev/gopherwallet.git/internal/models"
	"go.uber.org/zap"
)

const subscriberBuffer = 16

// Subscriber is one open push connection of one user.
type Subscriber struct {
	UserID int
	C      chan models.WalletEvent
}

type Hub struct {
	mu   sync.RWMutex
	subs map[int]map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]map[*Subscriber]struct{})}
}

func (h *Hub) Subscribe(UID int) *Subscriber {
	sub := &Subscriber{UserID: UID, C: make(chan models.WalletEvent, subscriberBuffer)}

	h.mu.Lock()
	if h.subs[UID] == nil {
		h.subs[UID] = make(map[*Subscriber]struct{})
	}
	h.subs[UID][sub] = struct{}{}
	h.mu.Unlock()

	logger.Log.Debug("push subscriber connected", zap.Int("uid", UID))
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if set, ok := h.subs[sub.UserID]; ok {
		if _, ok := set[sub]; ok {
			delete(set, sub)
			close(sub.C)
			if len(set) == 0 {
				delete(h.subs, sub.UserID)
			}
		}
	}
	h.mu.Unlock()

	logger.Log.Debug("push subscriber disconnected", zap.Int("uid", sub.UserID))
}

// Publish delivers event to every open connection of the user without
// blocking; a subscriber that cannot keep up misses the event and relies
// on its next refresh instead.
func (h *Hub) Publish(UID int, event models.WalletEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[UID] {
		select {
		case sub.C <- event:
		default:
			logger.Log.Warn("push subscriber too slow, dropping event",
				zap.Int("uid", UID),
				zap.String("type", event.EventType()))
		}
	}
}

// Connected reports whether the user has at least one live subscriber.
func (h *Hub) Connected(UID int) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[UID]) > 0
}
