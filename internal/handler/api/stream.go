package api

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// streamSSE writes one event per value until next reports the feed closed or the client goes away.
func streamSSE[T any](c *gin.Context, event string, next func(ctx context.Context) (T, bool), encode func(T) any) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// headers go out before the first event so clients see the stream open
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		v, ok := next(ctx)
		if !ok {
			return false
		}
		c.SSEvent(event, encode(v))
		return true
	})
}
