package backend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront-core/internal/infra"
	"storefront-core/internal/pkg/config"
	"storefront-core/internal/pkg/metrics"
	"storefront-core/internal/usecase/shared"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
)

// Client talks to the storefront REST backend. Every call goes through one
// circuit breaker; the caller's access token is forwarded as a bearer token.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker[*resty.Response]
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewClient(cfg config.BackendConfig, m *metrics.Metrics, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if cfg.RetryCount > 0 {
		httpClient.SetRetryCount(cfg.RetryCount)
	}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	breaker := gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:        "storefront-backend",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// a 4xx is the backend answering, not the backend failing
		IsSuccessful: func(err error) bool {
			var re *shared.RemoteError
			if errors.As(err, &re) {
				return re.Status < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("backend circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	return &Client{
		http:    httpClient,
		breaker: breaker,
		metrics: m,
		logger:  logger,
	}
}

// do executes one request and returns the response body of a 2xx answer.
func (c *Client) do(ctx context.Context, op, method, path string, build func(*resty.Request)) ([]byte, error) {
	started := time.Now()
	resp, err := c.breaker.Execute(func() (*resty.Response, error) {
		req := c.http.R().SetContext(ctx)
		if token := shared.AccessToken(ctx); token != "" {
			req.SetAuthToken(token)
		}
		if id := shared.RequestID(ctx); id != "" {
			req.SetHeader(shared.RequestIDHeader, id)
		}
		if build != nil {
			build(req)
		}

		resp, err := req.Execute(method, path)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return resp, &shared.RemoteError{
				Op:      op,
				Status:  resp.StatusCode(),
				Message: serverMessage(resp.Body()),
			}
		}
		return resp, nil
	})
	c.metrics.ObserveBackend(op, started)

	if err != nil {
		var re *shared.RemoteError
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return nil, infra.WrapBackendErr(c.logger, infra.KindUnavailable, op, err)
		case errors.As(err, &re):
			return nil, infra.WrapBackendErr(c.logger, infra.KindRejected, op, err)
		default:
			return nil, infra.WrapBackendErr(c.logger, infra.KindTransport, op, err)
		}
	}
	return resp.Body(), nil
}

func (c *Client) get(ctx context.Context, op, path string, build func(*resty.Request)) ([]byte, error) {
	return c.do(ctx, op, http.MethodGet, path, build)
}

func (c *Client) post(ctx context.Context, op, path string, build func(*resty.Request)) ([]byte, error) {
	return c.do(ctx, op, http.MethodPost, path, build)
}

func (c *Client) malformed(op string, err error) error {
	return infra.WrapBackendErr(c.logger, infra.KindMalformed, op, err)
}

func withEmail(email string) func(*resty.Request) {
	return func(r *resty.Request) {
		r.SetPathParam("email", email)
	}
}
