package broadcast

import (
	"context"
	"sync"
)

// Hub fans every published value out to each subscriber's mailbox.
// Publish enqueues for all subscribers under one lock, so every subscriber
// observes publishes in the same global order.
type Hub[K comparable, V any] struct {
	mu     sync.Mutex
	subs   map[uint64]*Mailbox[K, V]
	nextID uint64
	closed bool
}

func NewHub[K comparable, V any]() *Hub[K, V] {
	return &Hub[K, V]{
		subs: make(map[uint64]*Mailbox[K, V]),
	}
}

type Subscription[K comparable, V any] struct {
	id   uint64
	box  *Mailbox[K, V]
	hub  *Hub[K, V]
	once sync.Once
}

// Next blocks for the next value. It returns false after Close, hub teardown, or ctx cancellation.
func (s *Subscription[K, V]) Next(ctx context.Context) (V, bool) {
	return s.box.Pop(ctx)
}

func (s *Subscription[K, V]) TryNext() (V, bool) {
	return s.box.TryPop()
}

func (s *Subscription[K, V]) Pending() int {
	return s.box.Len()
}

// Close unsubscribes. Safe to call more than once.
func (s *Subscription[K, V]) Close() {
	s.once.Do(func() {
		if s.hub != nil {
			s.hub.remove(s.id)
		}
		s.box.Close()
	})
}

func (h *Hub[K, V]) Subscribe() *Subscription[K, V] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.subscribeLocked()
}

// SubscribeSeeded queues seed before the subscription can observe any later publish.
func (h *Hub[K, V]) SubscribeSeeded(key K, seed V) *Subscription[K, V] {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := h.subscribeLocked()
	sub.box.Push(key, seed)
	return sub
}

func (h *Hub[K, V]) subscribeLocked() *Subscription[K, V] {
	box := NewMailbox[K, V]()
	if h.closed {
		box.Close()
		return &Subscription[K, V]{box: box}
	}

	h.nextID++
	id := h.nextID
	h.subs[id] = box
	return &Subscription[K, V]{id: id, box: box, hub: h}
}

// Publish never blocks on subscribers.
func (h *Hub[K, V]) Publish(key K, v V) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, box := range h.subs {
		box.Push(key, v)
	}
}

func (h *Hub[K, V]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close tears down every subscription; later subscriptions start closed.
func (h *Hub[K, V]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, box := range h.subs {
		box.Close()
		delete(h.subs, id)
	}
}

func (h *Hub[K, V]) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}
