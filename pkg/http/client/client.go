package client

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/myzx/gohelper/internal/config"
	"github.com/myzx/gohelper/internal/logging"
	"github.com/myzx/gohelper/internal/monitoring"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Methods understood by Request besides the standard HTTP verbs.
const (
	MethodPostJSON = "POSTJSON"
	MethodUpload   = "UPLOAD"
)

// Client wraps resty with rate limiting, logging and metrics
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	metrics *monitoring.HTTPMetrics
	logger  *logging.Logger
	mu      sync.RWMutex
}

// Option configures a Client
type Option func(*Client)

// WithLogger routes client logs to l.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logging.Wrap(l)
	}
}

// WithMetrics registers request metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.metrics = monitoring.NewHTTPMetrics(reg)
	}
}

// New creates a client from cfg
func New(cfg Config, opts ...Option) *Client {
	// Only the pooled transport is taken from the retryable client.
	// Retries are driven by resty from cfg.RetryCount.
	transport := retryablehttp.NewClient().HTTPClient.Transport
	if t, ok := transport.(*http.Transport); ok && cfg.ConnectTimeout > 0 {
		t.DialContext = (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
	}

	restyClient := resty.New()
	restyClient.
		SetTransport(transport).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		SetRedirectPolicy(
			resty.FlexibleRedirectPolicy(cfg.MaxRedirects),
			resty.RedirectPolicyFunc(allowWebSchemes),
		)
	if cfg.UserAgent != "" {
		restyClient.SetHeader("User-Agent", cfg.UserAgent)
	}

	c := &Client{
		resty:   restyClient,
		limiter: newLimiter(cfg.RateLimit),
		logger:  config.NewLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	restyClient.SetLogger(c.logger.Sugar())

	return c
}

// Default returns a new client with DefaultConfig.
func Default(opts ...Option) *Client {
	return New(DefaultConfig(), opts...)
}

// NewFromEnv creates a client from HELPER_HTTP_* environment variables.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...), nil
}

func allowWebSchemes(req *http.Request, _ []*http.Request) error {
	switch req.URL.Scheme {
	case "http", "https":
		return nil
	}
	return fmt.Errorf("redirect to unsupported protocol %q", req.URL.Scheme)
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
}

// Resty exposes the underlying resty client
func (c *Client) Resty() *resty.Client {
	return c.resty
}

// Metrics returns the client's collectors, nil unless WithMetrics was used.
func (c *Client) Metrics() *monitoring.HTTPMetrics {
	return c.metrics
}

// SetHeader adds default header
func (c *Client) SetHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resty.SetHeader(key, value)
}

// RemoveHeader removes a default header
func (c *Client) RemoveHeader(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resty.Header.Del(key)
}

// Headers returns copy of all default headers
func (c *Client) Headers() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	headers := make(map[string]string)
	for k, v := range c.resty.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	return headers
}

// SetTimeout configures request timeout
func (c *Client) SetTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resty.SetTimeout(d)
}

// SetRetry configures retry behavior for transport errors
func (c *Client) SetRetry(maxRetries int, minWait, maxWait time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resty.SetRetryCount(maxRetries).
		SetRetryWaitTime(minWait).
		SetRetryMaxWaitTime(maxWait)
}

// SetRateLimit configures rate limiting (requests per second)
func (c *Client) SetRateLimit(rps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limiter = newLimiter(rps)
}

// SetBasicAuth configures basic authentication for every request
func (c *Client) SetBasicAuth(username, password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resty.SetBasicAuth(username, password)
}

// SetBearerAuth configures bearer token authentication for every request
func (c *Client) SetBearerAuth(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resty.SetAuthToken(token)
}

// newRequest waits for the rate limiter and returns a request bound to ctx
func (c *Client) newRequest(ctx context.Context) (*resty.Request, error) {
	c.mu.RLock()
	limiter := c.limiter
	c.mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resty.R().SetContext(ctx), nil
}

// Request sends one request. method is an HTTP verb, MethodPostJSON or
// MethodUpload; data is encoded as described in the package documentation
// and skipped when empty.
func (c *Client) Request(ctx context.Context, method, rawURL string, data any, opts ...RequestOption) (*Response, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return nil, err
	}

	verb, err := applyData(req, strings.ToUpper(method), data)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := req.Execute(verb, rawURL)
	return c.finish(verb, rawURL, resp, err)
}

// finish turns a resty result into a Response, recording metrics and logs.
func (c *Client) finish(verb, rawURL string, resp *resty.Response, err error) (*Response, error) {
	host := hostOf(rawURL)

	if resp == nil || resp.RawResponse == nil {
		if err == nil {
			err = fmt.Errorf("no response received")
		}
		c.metrics.RecordError(verb, host)
		c.logger.Warn("HTTP request failed",
			zap.String("method", verb),
			zap.String("url", rawURL),
			zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", verb, rawURL, err)
	}

	out := newRestyResponse(resp, err)
	c.metrics.RecordRequest(verb, host, out.Status(), out.Duration(), resp.Size())
	c.logger.Debug("HTTP request completed",
		zap.String("method", verb),
		zap.String("url", rawURL),
		zap.Int("status", out.Status()),
		zap.Duration("duration", out.Duration()))

	return out, nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// Get sends data as the query string.
func (c *Client) Get(ctx context.Context, rawURL string, data any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodGet, rawURL, data, opts...)
}

// Post sends data as an urlencoded form.
func (c *Client) Post(ctx context.Context, rawURL string, data any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodPost, rawURL, data, opts...)
}

// PostJSON sends data as a JSON body.
func (c *Client) PostJSON(ctx context.Context, rawURL string, data any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, MethodPostJSON, rawURL, data, opts...)
}

// Put sends data as an urlencoded form.
func (c *Client) Put(ctx context.Context, rawURL string, data any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodPut, rawURL, data, opts...)
}

// Delete sends data as the query string.
func (c *Client) Delete(ctx context.Context, rawURL string, data any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, rawURL, data, opts...)
}

// Upload posts parts as multipart/form-data.
func (c *Client) Upload(ctx context.Context, rawURL string, parts []Part, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, MethodUpload, rawURL, parts, opts...)
}
