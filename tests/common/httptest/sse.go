//go:build unit || e2e

package httptest

import (
	"bufio"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type SSEEvent struct {
	Event string
	Data  string
}

// OpenStream opens an event stream on a live server. The stream is closed on cancel or test cleanup.
func OpenStream(t *testing.T, baseURL, path, authToken string) (<-chan SSEEvent, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path, nil)
	require.NoError(t, err)
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	events := make(chan SSEEvent, 16)
	go func() {
		defer close(events)
		defer resp.Body.Close()

		var current SSEEvent
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case line == "":
				if current.Event != "" || current.Data != "" {
					select {
					case events <- current:
					case <-ctx.Done():
						return
					}
				}
				current = SSEEvent{}
			case strings.HasPrefix(line, "event:"):
				current.Event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				current.Data += strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			}
		}
	}()
	return events, cancel
}

// NextEvent waits for the next event or fails the test.
func NextEvent(t *testing.T, events <-chan SSEEvent, timeout time.Duration) SSEEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "stream closed before the next event")
		return ev
	case <-time.After(timeout):
		t.Fatal("timed out waiting for stream event")
		return SSEEvent{}
	}
}
