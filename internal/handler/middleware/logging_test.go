//go:build unit

package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"storefront-core/internal/handler/httperr"
	"storefront-core/internal/handler/middleware"
	"storefront-core/internal/pkg/errs"
	"storefront-core/internal/usecase/shared"
	"storefront-core/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type LoggingMiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
	logs   *bytes.Buffer
}

func (s *LoggingMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.logs = &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(s.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s.router = gin.New()
	s.router.Use(middleware.CustomRecovery(logger), middleware.LoggingMiddleware(logger), middleware.ErrorHandler())
	s.router.GET("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, shared.RequestID(c.Request.Context()))
	})
	s.router.GET("/panic", func(*gin.Context) {
		panic("boom")
	})
	s.router.GET("/refused", func(c *gin.Context) {
		httperr.AbortWithKind(c, errs.Mark(errs.New("toggle"), errs.ErrCartDisabled))
	})
	s.router.GET("/cart/stream", func(c *gin.Context) {
		c.String(http.StatusOK, "event: cart\ndata: {}\n\n")
	})
}

func TestLoggingMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(LoggingMiddlewareTestSuite))
}

func (s *LoggingMiddlewareTestSuite) TestRequestID() {
	s.Run("generated when absent", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/echo", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		id := rec.Header().Get(shared.RequestIDHeader)
		s.NotEmpty(id)
		s.Equal(id, rec.Body.String())
		s.Contains(s.logs.String(), "request_id="+id)
	})

	s.Run("inbound id is kept", func() {
		req := nethttptest.NewRequest(http.MethodGet, "/echo", nil)
		req.Header.Set(shared.RequestIDHeader, "trace-123")
		rec := nethttptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		s.Equal("trace-123", rec.Header().Get(shared.RequestIDHeader))
		s.Equal("trace-123", rec.Body.String())
	})
}

func (s *LoggingMiddlewareTestSuite) TestStatusDrivesLevel() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/refused", nil, "")

	httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Cart is disabled")
	s.Contains(s.logs.String(), "level=WARN")
	s.Contains(s.logs.String(), "status_code=409")
}

func (s *LoggingMiddlewareTestSuite) TestStreamsLogOpenAndClose() {
	httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart/stream", nil, "")

	s.Contains(s.logs.String(), `msg="Stream opened"`)
	s.Contains(s.logs.String(), `msg="Stream closed"`)
	s.NotContains(s.logs.String(), "Request completed")
}

func (s *LoggingMiddlewareTestSuite) TestRecovery() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/panic", nil, "")

	httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	s.Contains(s.logs.String(), "recovered from panic")
}
