package broadcast

import (
	"context"
	"sync"
)

// Mailbox is a FIFO of pending values keyed by K. Pushing a key that is still pending
// drops the older value and queues the new one at the tail, so a reader never sees
// an older value for a key after a newer one, and delivered values keep publish order.
//
// Safe for one reader and any number of writers.
type Mailbox[K comparable, V any] struct {
	mu      sync.Mutex
	order   []K
	pending map[K]V
	closed  bool
	signal  chan struct{} // buffered, size 1
}

func NewMailbox[K comparable, V any]() *Mailbox[K, V] {
	return &Mailbox[K, V]{
		pending: make(map[K]V),
		signal:  make(chan struct{}, 1),
	}
}

// Push returns false once the mailbox is closed.
func (m *Mailbox[K, V]) Push(key K, v V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false
	}

	if _, ok := m.pending[key]; ok {
		m.removeKey(key)
	}
	m.order = append(m.order, key)
	m.pending[key] = v

	select {
	case m.signal <- struct{}{}:
	default:
	}
	return true
}

func (m *Mailbox[K, V]) TryPop() (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	if len(m.order) == 0 {
		return zero, false
	}

	key := m.order[0]
	m.order[0] = *new(K)
	m.order = m.order[1:]
	if len(m.order) == 0 {
		m.order = nil
	}

	v := m.pending[key]
	delete(m.pending, key)
	return v, true
}

// Pop blocks until a value is available, the mailbox is closed, or ctx is done.
func (m *Mailbox[K, V]) Pop(ctx context.Context) (V, bool) {
	var zero V
	for {
		if v, ok := m.TryPop(); ok {
			return v, true
		}
		if m.isClosed() {
			return zero, false
		}
		select {
		case <-m.signal:
		case <-ctx.Done():
			return zero, false
		}
	}
}

func (m *Mailbox[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// Close discards pending values and wakes a blocked reader.
func (m *Mailbox[K, V]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	m.order = nil
	clear(m.pending)

	select {
	case m.signal <- struct{}{}:
	default:
	}
}

func (m *Mailbox[K, V]) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mailbox[K, V]) removeKey(key K) {
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
