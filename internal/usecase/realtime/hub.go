package realtime

import (
	"log/slog"
	"sync"

	"store-pickup/internal/pkg/config"
	"store-pickup/internal/pkg/errs"
	"store-pickup/internal/usecase/queries"
)

var (
	ErrSubscriberLagged = errs.New("subscriber fell behind")
	ErrResyncRequired   = errs.New("change feed interrupted, resync required")
	ErrHubClosed        = errs.New("realtime hub closed")
	errUnsubscribed     = errs.New("unsubscribed")
)

const defaultBufferSize = 32

// Hub fans order records out to subscribers. Records are shared between
// subscribers and must be treated as read-only.
type Hub struct {
	mu         sync.Mutex
	subs       map[uint64]*Subscription
	nextID     uint64
	bufferSize int
	closed     bool
}

func NewHub(cfg config.RealtimeConfig) *Hub {
	size := cfg.BufferSize
	if size <= 0 {
		size = defaultBufferSize
	}
	return &Hub{
		subs:       make(map[uint64]*Subscription),
		bufferSize: size,
	}
}

func (h *Hub) Subscribe(f Filter) (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	h.nextID++
	sub := &Subscription{
		id:     h.nextID,
		filter: f,
		ch:     make(chan *queries.OrderView, h.bufferSize),
		hub:    h,
	}
	h.subs[sub.id] = sub
	return sub, nil
}

// Publish delivers v to every subscriber whose scope covers it and returns
// the number of deliveries. A subscriber with a full buffer is closed with
// ErrSubscriberLagged instead of losing the record silently.
func (h *Hub) Publish(v *queries.OrderView) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for id, sub := range h.subs {
		if !sub.filter.InScope(v) {
			continue
		}
		select {
		case sub.ch <- v:
			delivered++
		default:
			slog.Warn("realtime subscriber lagged, closing", append(sub.filter.logAttrs(), "subscription", id)...)
			h.terminateLocked(sub, ErrSubscriberLagged)
		}
	}
	return delivered
}

// Resync closes every subscription so consumers re-fetch current state.
func (h *Hub) Resync() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.subs) > 0 {
		slog.Info("realtime resync, closing subscriptions", "count", len(h.subs))
	}
	for _, sub := range h.subs {
		h.terminateLocked(sub, ErrResyncRequired)
	}
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for _, sub := range h.subs {
		h.terminateLocked(sub, ErrHubClosed)
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub.id]; ok {
		h.terminateLocked(sub, errUnsubscribed)
	}
}

func (h *Hub) terminateLocked(sub *Subscription, err error) {
	delete(h.subs, sub.id)
	sub.err = err
	close(sub.ch)
}

type Subscription struct {
	id     uint64
	filter Filter
	ch     chan *queries.OrderView
	hub    *Hub
	// written before ch is closed
	err error
}

// C is closed when the subscription ends; Err then reports why.
func (s *Subscription) C() <-chan *queries.OrderView {
	return s.ch
}

func (s *Subscription) Err() error {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if s.err == errUnsubscribed {
		return nil
	}
	return s.err
}

func (s *Subscription) Filter() Filter {
	return s.filter
}

func (s *Subscription) Close() {
	s.hub.remove(s)
}
