//go:build unit

package broadcast

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	key int
	val int
}

func drain(m *Mailbox[int, event]) []event {
	var out []event
	for {
		v, ok := m.TryPop()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestMailbox_CoalescesPerKey(t *testing.T) {
	m := NewMailbox[int, event]()

	m.Push(1, event{1, 10})
	m.Push(2, event{2, 20})
	m.Push(1, event{1, 9})

	assert.Equal(t, []event{{2, 20}, {1, 9}}, drain(m))
}

func TestMailbox_KeepsOrderAcrossKeys(t *testing.T) {
	m := NewMailbox[int, event]()
	for i := range 5 {
		m.Push(i, event{i, i})
	}
	got := drain(m)
	require.Len(t, got, 5)
	for i, e := range got {
		assert.Equal(t, i, e.key)
	}
}

func TestMailbox_PopBlocksUntilPush(t *testing.T) {
	m := NewMailbox[int, event]()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	go func() {
		time.Sleep(10 * time.Millisecond)
		m.Push(7, event{7, 1})
	}()

	v, ok := m.Pop(ctx)
	require.True(t, ok)
	assert.Equal(t, event{7, 1}, v)
}

func TestMailbox_CloseWakesReader(t *testing.T) {
	m := NewMailbox[int, event]()
	done := make(chan bool)

	go func() {
		_, ok := m.Pop(context.Background())
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	m.Close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("reader was not woken by Close")
	}
	assert.False(t, m.Push(1, event{}))
}

func TestMailbox_PopHonorsContext(t *testing.T) {
	m := NewMailbox[int, event]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := m.Pop(ctx)
	assert.False(t, ok)
}

func TestHub_FanOut(t *testing.T) {
	h := NewHub[int, event]()
	a := h.Subscribe()
	b := h.Subscribe()
	defer a.Close()
	defer b.Close()

	h.Publish(1, event{1, 5})
	h.Publish(2, event{2, 3})

	for _, sub := range []*Subscription[int, event]{a, b} {
		first, ok := sub.TryNext()
		require.True(t, ok)
		second, ok := sub.TryNext()
		require.True(t, ok)
		assert.Equal(t, []event{{1, 5}, {2, 3}}, []event{first, second})
	}
}

func TestHub_SameOrderForEverySubscriber(t *testing.T) {
	h := NewHub[int, event]()
	subs := make([]*Subscription[int, event], 3)
	for i := range subs {
		subs[i] = h.Subscribe()
	}

	var wg sync.WaitGroup
	for p := range 4 {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := range 25 {
				k := p*100 + i
				h.Publish(k, event{k, i})
			}
		}(p)
	}
	wg.Wait()

	var reference []event
	for i, sub := range subs {
		var got []event
		for {
			v, ok := sub.TryNext()
			if !ok {
				break
			}
			got = append(got, v)
		}
		if i == 0 {
			reference = got
			assert.Len(t, got, 100)
			continue
		}
		assert.Equal(t, reference, got)
	}
}

func TestHub_SeededSubscriptionSeesSeedFirst(t *testing.T) {
	h := NewHub[int, event]()
	sub := h.SubscribeSeeded(0, event{0, 1})
	h.Publish(1, event{1, 2})

	first, _ := sub.TryNext()
	second, _ := sub.TryNext()
	assert.Equal(t, event{0, 1}, first)
	assert.Equal(t, event{1, 2}, second)
}

func TestHub_CloseUnsubscribes(t *testing.T) {
	h := NewHub[int, event]()
	sub := h.Subscribe()
	assert.Equal(t, 1, h.Len())

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, h.Len())

	h.Publish(1, event{1, 1})
	_, ok := sub.TryNext()
	assert.False(t, ok)
}

func TestHub_TeardownClosesEverything(t *testing.T) {
	h := NewHub[int, event]()
	sub := h.Subscribe()
	h.Close()

	_, ok := sub.Next(context.Background())
	assert.False(t, ok)

	late := h.Subscribe()
	_, ok = late.Next(context.Background())
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())
}
