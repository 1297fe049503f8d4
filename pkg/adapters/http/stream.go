package http

import (
	"log/slog"
	"sync"
)

// Message is one server-sent event.
type Message struct {
	Event string
	Data  string
}

// StreamManager handles active SSE connections, keyed by page ID.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- Message]struct{}
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- Message]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a listener for pageID. The returned cancel func must be
// called to release it; it closes the channel.
func (sm *StreamManager) Subscribe(pageID string) (<-chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Message, 64)
	if _, ok := sm.subscribers[pageID]; !ok {
		sm.subscribers[pageID] = make(map[chan<- Message]struct{})
	}
	sm.subscribers[pageID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[pageID]; ok {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(sm.subscribers, pageID)
				}
			}
			close(ch)
		})
	}
}

// Subscribers returns the number of listeners of pageID.
func (sm *StreamManager) Subscribers(pageID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[pageID])
}

// Broadcast sends msg to every listener of pageID. Slow clients lose messages
// instead of blocking the animation.
func (sm *StreamManager) Broadcast(pageID string, msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[pageID] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message", "page_id", pageID, "event", msg.Event)
		}
	}
}
