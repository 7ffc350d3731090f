//go:build unit

package cartsync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerQueue_FIFOPerOwner(t *testing.T) {
	q := newOwnerQueue()
	first, err := q.acquire(context.Background(), "alice")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)
	for i := range 5 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			release, err := q.acquire(context.Background(), "alice")
			assert.NoError(t, err)
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			release()
		}(i)
		// let goroutine i enqueue before i+1
		require.Eventually(t, func() bool { return q.pending("alice") == i+2 }, time.Second, time.Millisecond)
	}

	first()
	wg.Wait()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	assert.Equal(t, 0, q.pending("alice"))
}

func TestOwnerQueue_OwnersDoNotBlockEachOther(t *testing.T) {
	q := newOwnerQueue()
	releaseAlice, err := q.acquire(context.Background(), "alice")
	require.NoError(t, err)
	defer releaseAlice()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	releaseBob, err := q.acquire(ctx, "bob")
	require.NoError(t, err)
	releaseBob()
}

func TestOwnerQueue_CancelledWaiterPassesTurnOn(t *testing.T) {
	q := newOwnerQueue()
	first, err := q.acquire(context.Background(), "alice")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = q.acquire(ctx, "alice")
	assert.ErrorIs(t, err, context.Canceled)

	got := make(chan struct{})
	go func() {
		release, err := q.acquire(context.Background(), "alice")
		if err == nil {
			release()
		}
		close(got)
	}()

	first()
	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("turn was not passed on after a cancelled waiter")
	}
}
