package stock

import (
	"sync"

	"storefront-core/internal/domain/catalog"
	"storefront-core/internal/pkg/broadcast"
)

type Subscription = broadcast.Subscription[int, catalog.StockEvent]

// Channel broadcasts stock changes to every subscriber. No history is retained:
// a new subscriber only sees events published after it subscribed.
type Channel struct {
	hub *broadcast.Hub[int, catalog.StockEvent]

	mu     sync.RWMutex
	relays []func(catalog.StockEvent)
}

func NewChannel() *Channel {
	return &Channel{hub: broadcast.NewHub[int, catalog.StockEvent]()}
}

// Publish delivers ev locally and hands it to every relay. It never blocks on subscribers.
func (c *Channel) Publish(ev catalog.StockEvent) {
	c.hub.Publish(ev.RecordID, ev)

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, relay := range c.relays {
		relay(ev)
	}
}

// Deliver is Publish without relays, for events that arrived from another replica.
func (c *Channel) Deliver(ev catalog.StockEvent) {
	c.hub.Publish(ev.RecordID, ev)
}

// AddRelay registers an outbound hook. Relays must not block.
func (c *Channel) AddRelay(relay func(catalog.StockEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.relays = append(c.relays, relay)
}

// Subscribe returns a subscription whose pending events are coalesced per record,
// so a slow reader skips to the newest stock of each record.
func (c *Channel) Subscribe() *Subscription {
	return c.hub.Subscribe()
}

func (c *Channel) Subscribers() int {
	return c.hub.Len()
}

func (c *Channel) Close() {
	c.hub.Close()
}
