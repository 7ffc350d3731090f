package cartsync

import (
	"context"
	"sync"

	"storefront-core/internal/usecase/cartstore"
)

// ownerQueue admits one operation per owner at a time, in arrival order.
// Each waiter holds the channel its predecessor closes on release.
type ownerQueue struct {
	mu    sync.Mutex
	lanes map[string]*lane
}

type lane struct {
	tail    chan struct{}
	waiters int
}

func newOwnerQueue() *ownerQueue {
	return &ownerQueue{lanes: make(map[string]*lane)}
}

// acquire blocks until every earlier operation for ownerKey has released.
// On ctx cancellation the turn is still passed on once the predecessor finishes.
func (q *ownerQueue) acquire(ctx context.Context, ownerKey string) (func(), error) {
	ownerKey = cartstore.NormalizeKey(ownerKey)

	q.mu.Lock()
	l, ok := q.lanes[ownerKey]
	if !ok {
		l = &lane{}
		q.lanes[ownerKey] = l
	}
	prev := l.tail
	mine := make(chan struct{})
	l.tail = mine
	l.waiters++
	q.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			close(mine)
			q.mu.Lock()
			l.waiters--
			if l.waiters == 0 {
				delete(q.lanes, ownerKey)
			}
			q.mu.Unlock()
		})
	}

	if prev == nil {
		return release, nil
	}

	select {
	case <-prev:
		return release, nil
	case <-ctx.Done():
		go func() {
			<-prev
			release()
		}()
		return nil, ctx.Err()
	}
}

func (q *ownerQueue) pending(ownerKey string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if l, ok := q.lanes[cartstore.NormalizeKey(ownerKey)]; ok {
		return l.waiters
	}
	return 0
}
