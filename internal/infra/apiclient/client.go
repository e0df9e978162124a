// Package apiclient is the single network egress point of the app: verb
// methods over the backend REST API, bearer-token ownership, per-request
// timeout and response normalization.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/infra/observability"
	"github.com/boddenberg/digtecnico-client-go/internal/port"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("apiclient")

// DefaultTimeout bounds every request unless Options.Timeout is set.
const DefaultTimeout = 30 * time.Second

// Options configures the API bases and timeout.
type Options struct {
	// BaseURL is the mobile-prefixed API base.
	BaseURL string
	// RootURL serves endpoints that live outside the mobile namespace.
	RootURL string
	Timeout time.Duration
}

// Client implements port.APIClient.
type Client struct {
	httpClient *http.Client
	opts       Options
	store      port.TokenStore
	cb         *gobreaker.CircuitBreaker
	normalizer *Normalizer
	metrics    *observability.Metrics
	logger     *zap.Logger

	mu    sync.RWMutex
	token string
}

var _ port.APIClient = (*Client)(nil)

// New creates the client and loads the persisted token. cb may be nil to
// disable the breaker.
func New(httpClient *http.Client, opts Options, store port.TokenStore, cb *gobreaker.CircuitBreaker, metrics *observability.Metrics, logger *zap.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	c := &Client{
		httpClient: httpClient,
		opts:       opts,
		store:      store,
		cb:         cb,
		metrics:    metrics,
		logger:     logger,
	}
	c.normalizer = NewNormalizer(c.invalidateSession, logger)
	c.loadToken(context.Background())
	return c
}

// ============================================================
// Token lifecycle
// ============================================================

func (c *Client) loadToken(ctx context.Context) string {
	token, ok := c.store.Load(ctx, domain.KeyAccessToken)
	if !ok || token == "" {
		return ""
	}
	c.mu.Lock()
	if c.token == "" {
		c.token = token
	}
	token = c.token
	c.mu.Unlock()
	return token
}

// currentToken returns the in-memory token, re-reading the store when it
// is empty so a login done elsewhere is picked up.
func (c *Client) currentToken(ctx context.Context) string {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		return token
	}
	return c.loadToken(ctx)
}

// HasToken reports whether a bearer token is held in memory.
func (c *Client) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// SetToken replaces the in-memory token and persists it.
func (c *Client) SetToken(ctx context.Context, token string) error {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	return c.store.Save(ctx, domain.KeyAccessToken, token)
}

// ClearToken drops the in-memory token and every persisted session key.
func (c *Client) ClearToken(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	return c.store.Clear(ctx)
}

func (c *Client) invalidateSession(ctx context.Context) {
	c.logger.Warn("apiclient: 401 received, clearing session")
	if c.metrics != nil {
		c.metrics.IncrSessionInvalidation()
	}
	// the request context may already be done; cleanup must still run
	if err := c.ClearToken(context.WithoutCancel(ctx)); err != nil {
		c.logger.Error("apiclient: session cleanup incomplete", zap.Error(err))
	}
}

// ============================================================
// Verbs
// ============================================================

func (c *Client) Get(ctx context.Context, endpoint string, opts ...port.CallOption) (*domain.Envelope, error) {
	return c.request(ctx, http.MethodGet, endpoint, nil, opts)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any, opts ...port.CallOption) (*domain.Envelope, error) {
	return c.request(ctx, http.MethodPost, endpoint, body, opts)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any, opts ...port.CallOption) (*domain.Envelope, error) {
	return c.request(ctx, http.MethodPut, endpoint, body, opts)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body any, opts ...port.CallOption) (*domain.Envelope, error) {
	return c.request(ctx, http.MethodPatch, endpoint, body, opts)
}

func (c *Client) Delete(ctx context.Context, endpoint string, opts ...port.CallOption) (*domain.Envelope, error) {
	return c.request(ctx, http.MethodDelete, endpoint, nil, opts)
}

// rawResponse is what the transport hands to the normalizer.
type rawResponse struct {
	status int
	body   []byte
}

func (c *Client) request(ctx context.Context, method, endpoint string, body any, opts []port.CallOption) (env *domain.Envelope, err error) {
	o := port.ApplyCallOptions(opts)
	base := c.opts.BaseURL
	if o.UseRootURL {
		base = c.opts.RootURL
	}
	url := base + endpoint

	ctx, span := tracer.Start(ctx, "APIClient."+method, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("api.endpoint", endpoint),
		attribute.Bool("api.root_url", o.UseRootURL),
	)

	start := time.Now()
	defer func() {
		outcome := "ok"
		if apiErr, ok := domain.AsAPIError(err); ok {
			outcome = apiErr.Kind
			span.SetStatus(codes.Error, apiErr.Message)
			span.SetAttributes(attribute.Int("http.status_code", apiErr.StatusCode))
		}
		if c.metrics != nil {
			c.metrics.RecordRequest(method, outcome, time.Since(start))
		}
	}()

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, endpoint, err)
		}
	}

	token := c.currentToken(ctx)

	reqCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, url, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("apiclient: failed to create request",
			zap.String("method", method),
			zap.String("url", url),
			zap.Error(err),
		)
		return nil, domain.NewNetworkError()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("apiclient: request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Bool("token_present", token != ""),
	)

	raw, err := c.execute(req)
	if err != nil {
		apiErr := c.classify(ctx, reqCtx, err)
		c.logger.Error("apiclient: request failed",
			zap.String("method", method),
			zap.String("url", url),
			zap.String("kind", apiErr.Kind),
			zap.Error(err),
		)
		return nil, apiErr
	}

	if raw.status < 200 || raw.status > 299 {
		c.logger.Warn("apiclient: non-2xx response",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", raw.status),
		)
	} else {
		c.logger.Debug("apiclient: response",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", raw.status),
		)
	}

	return c.normalizer.Normalize(ctx, raw.status, raw.body)
}

// execute runs the round trip, through the breaker when one is configured.
func (c *Client) execute(req *http.Request) (*rawResponse, error) {
	roundTrip := func() (any, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return &rawResponse{status: resp.StatusCode, body: body}, nil
	}

	if c.cb == nil {
		result, err := roundTrip()
		if err != nil {
			return nil, err
		}
		return result.(*rawResponse), nil
	}

	result, err := c.cb.Execute(roundTrip)
	if err != nil {
		return nil, err
	}
	return result.(*rawResponse), nil
}

// classify maps a transport failure to its APIError kind.
func (c *Client) classify(parent, reqCtx context.Context, err error) *domain.APIError {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return domain.NewCircuitOpenError()
	case errors.Is(parent.Err(), context.Canceled):
		return domain.NewCanceledError()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(reqCtx.Err(), context.DeadlineExceeded):
		return domain.NewTimeoutError()
	default:
		return domain.NewNetworkError()
	}
}

// IsTransportFailure tells the breaker which errors mean the backend is
// unreachable. Caller cancellation says nothing about backend health.
func IsTransportFailure(err error) bool {
	return !errors.Is(err, context.Canceled)
}
