package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"storefront-core/internal/domain/catalog"
	"storefront-core/internal/pkg/broadcast"
	"storefront-core/internal/pkg/errs"
	"storefront-core/internal/usecase/stock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type stockMessage struct {
	Origin   string `json:"origin"`
	RecordID int    `json:"recordId"`
	NewStock int    `json:"newStock"`
}

// StockBridge mirrors stock events between replicas over Redis Pub/Sub.
// Local events are relayed out; remote events are delivered locally without
// being relayed again. Outbound events wait in a per-record coalescing queue.
type StockBridge struct {
	client  *redis.Client
	topic   string
	origin  string
	stock   *stock.Channel
	logger  *slog.Logger
	pubsub  *redis.PubSub
	pending *broadcast.Mailbox[int, catalog.StockEvent]
	wg      sync.WaitGroup
}

func NewStockBridge(client *redis.Client, topic string, stockCh *stock.Channel, logger *slog.Logger) *StockBridge {
	return &StockBridge{
		client:  client,
		topic:   topic,
		origin:  uuid.NewString(),
		stock:   stockCh,
		logger:  logger,
		pending: broadcast.NewMailbox[int, catalog.StockEvent](),
	}
}

// Start subscribes to the topic and begins relaying in both directions.
func (b *StockBridge) Start(ctx context.Context) error {
	b.pubsub = b.client.Subscribe(ctx, b.topic)
	if _, err := b.pubsub.Receive(ctx); err != nil {
		_ = b.pubsub.Close()
		return errs.Wrapf(err, "subscribe to %s", b.topic)
	}

	inbound := b.pubsub.Channel()
	b.stock.AddRelay(func(ev catalog.StockEvent) {
		b.pending.Push(ev.RecordID, ev)
	})

	b.wg.Add(2)
	go b.publishLoop()
	go b.receiveLoop(inbound)

	b.logger.Info("stock bridge started", slog.String("topic", b.topic), slog.String("origin", b.origin))
	return nil
}

func (b *StockBridge) publishLoop() {
	defer b.wg.Done()
	for {
		ev, ok := b.pending.Pop(context.Background())
		if !ok {
			return
		}
		payload, err := json.Marshal(stockMessage{Origin: b.origin, RecordID: ev.RecordID, NewStock: ev.NewStock})
		if err != nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = b.client.Publish(ctx, b.topic, payload).Err()
		cancel()
		if err != nil {
			b.logger.Warn("stock event publish failed",
				slog.Int("record_id", ev.RecordID),
				slog.String("error", err.Error()))
		}
	}
}

func (b *StockBridge) receiveLoop(inbound <-chan *redis.Message) {
	defer b.wg.Done()
	for msg := range inbound {
		var m stockMessage
		if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
			b.logger.Warn("ignoring malformed stock message", slog.String("error", err.Error()))
			continue
		}
		if m.Origin == b.origin {
			continue
		}
		b.stock.Deliver(catalog.StockEvent{RecordID: m.RecordID, NewStock: m.NewStock})
	}
}

// Stop drops unsent events and closes the subscription.
func (b *StockBridge) Stop(context.Context) error {
	b.pending.Close()
	var err error
	if b.pubsub != nil {
		err = b.pubsub.Close()
	}
	b.wg.Wait()
	return err
}
