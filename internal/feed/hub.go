package feed

import (
	"context"
	"laporantdx/backend/internal/logger"
	"laporantdx/backend/internal/models"
	"sync"
)

type Hub struct {
	mu      sync.RWMutex
	clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	EventsCh     chan models.FeedEvent

	done chan struct{}
	log  *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		EventsCh:     make(chan models.FeedEvent, 64),
		done:         make(chan struct{}),
		log:          log.With("service", "FeedHub"),
	}
}

// Run serves registrations and fans events out until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		h.closeAll()
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.RegisterCh:
			h.mu.Lock()
			h.clients[c.GetID()] = c
			h.mu.Unlock()
			h.log.Debug("feed client registered", "client_id", c.GetID())
		case c := <-h.UnregisterCh:
			h.remove(c)
		case ev := <-h.EventsCh:
			h.broadcast(ev)
		}
	}
}

// Register hands a client to the hub; it returns false once the hub stopped.
func (h *Hub) Register(c Client) bool {
	select {
	case h.RegisterCh <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c Client) {
	select {
	case h.UnregisterCh <- c:
	case <-h.done:
	}
}

func (h *Hub) broadcast(ev models.FeedEvent) {
	h.mu.RLock()
	var slow []Client
	for _, c := range h.clients {
		select {
		case c.GetSendChannel() <- ev:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn("feed client too slow, dropping", "client_id", c.GetID())
		h.remove(c)
	}
}

func (h *Hub) remove(c Client) {
	h.mu.Lock()
	_, ok := h.clients[c.GetID()]
	delete(h.clients, c.GetID())
	h.mu.Unlock()
	if ok {
		c.Close()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.Close()
		delete(h.clients, id)
	}
}

// HasClient reports whether a client with that id is registered.
func (h *Hub) HasClient(id string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[id]
	return ok
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
