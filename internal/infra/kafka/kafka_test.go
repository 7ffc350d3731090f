//go:build unit

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"storefront-core/internal/domain/cart"
	"storefront-core/internal/domain/order"
	"storefront-core/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func sampleOrder() order.Order {
	snapshot := cart.New("alice@example.com").WithLines([]cart.LineItem{
		{RecordID: 1, Amount: 2, UnitPrice: decimal.NewFromInt(10)},
		{RecordID: 2, Amount: 0, UnitPrice: decimal.NewFromInt(5)},
		{RecordID: 3, Amount: 1, UnitPrice: decimal.NewFromInt(7)},
	})
	return order.FromCart("42", snapshot, "paypal", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
}

func TestNewClient(t *testing.T) {
	assert.False(t, NewClient("").Enabled())
	assert.False(t, NewClient(" , ").Enabled())

	c := NewClient("kafka-1:9092, kafka-2:9092")
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, c.Brokers)
	assert.True(t, c.Enabled())
}

func TestOrderPublisher_WritesKeyedEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &OrderPublisher{writer: w}

	require.NoError(t, p.PublishOrderCommitted(context.Background(), sampleOrder()))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "alice@example.com", string(w.msgs[0].Key))

	var ev OrderCommittedEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, EventOrderCommitted, ev.Type)
	assert.Equal(t, "42", ev.OrderID)
	assert.Equal(t, 3, ev.TotalItems)
	assert.True(t, decimal.NewFromInt(27).Equal(ev.TotalPrice))
	assert.Len(t, ev.Lines, 2)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestOrderPublisher_WrapsWriteError(t *testing.T) {
	p := &OrderPublisher{writer: &fakeWriter{err: errs.New("leader not available")}}

	err := p.PublishOrderCommitted(context.Background(), sampleOrder())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}

func TestOrderPublisher_DisabledDropsEvents(t *testing.T) {
	p := NewOrderPublisher(NewClient(""), "storefront.orders")

	assert.False(t, p.Enabled())
	assert.NoError(t, p.PublishOrderCommitted(context.Background(), sampleOrder()))
	assert.NoError(t, p.Close())
}
