package events

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Hub fans events out to subscribers. Publish never blocks: every
// subscriber has a bounded queue and a subscriber that falls behind loses
// its oldest events, tracked by a dropped counter the consumer drains into
// a Lagged notice. Per-subscriber ordering follows publish order; there is
// no total order guarantee across subscribers.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscriber]struct{}
	buffer int
	logger *slog.Logger
}

func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		subs:   make(map[*Subscriber]struct{}),
		buffer: buffer,
		logger: logger,
	}
}

type Subscriber struct {
	ch      chan Event
	dropped atomic.Int64
}

// Events is the subscriber's ordered event sequence. The channel is closed
// by Unsubscribe; in-flight events still buffered may be drained first.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// TakeDropped returns and resets the number of events lost since the last
// call. Consumers translate a non-zero value into a Lagged notice.
func (s *Subscriber) TakeDropped() int {
	return int(s.dropped.Swap(0))
}

func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{ch: make(chan Event, h.buffer)}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
}

// Publish fans ev out to all current subscribers without blocking. Callers
// must not hold any station lock here; commands publish after their
// mutation commits and the lock is released.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case sub.ch <- ev:
		default:
			// Queue full: evict the oldest event. Publish holds the only
			// send side, so after one receive the send cannot fail.
			select {
			case <-sub.ch:
				sub.dropped.Add(1)
			default:
			}
			select {
			case sub.ch <- ev:
			default:
				sub.dropped.Add(1)
			}
			if h.logger != nil {
				h.logger.Warn("event subscriber lagging",
					"event_type", string(ev.EventType()),
					"dropped_total", sub.dropped.Load(),
				)
			}
		}
	}
}

// SubscriberCount is used by health/debug surfaces.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
