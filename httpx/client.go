// Package httpx is the outbound HTTP integration wrapper, compiled in by
// importing this package (the http-client capability). It narrows net/http
// to the surface botlib consumers need: a retrying client with request
// logging and a JSON convenience layer, with every failure folded into the
// unified error taxonomy as *httpx.Error.
package httpx

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	randv2 "math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	botlib "github.com/GeneralBots/botlib"
	"github.com/GeneralBots/botlib/retry"
)

// Client wraps http.Client with retries, backoff and logging. Create one
// with New and share it; the zero value is not usable.
type Client struct {
	hc          *http.Client
	log         *slog.Logger
	baseURL     string
	retries     int
	baseBackoff time.Duration
	maxBackoff  time.Duration
	headers     map[string]string
	userAgent   string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the URL prefix for the JSON helpers' endpoints.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(t time.Duration) Option {
	return func(c *Client) { c.hc.Timeout = t }
}

// WithLogger sets the logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRetries enables up to n retries with exponential backoff starting
// at backoff.
func WithRetries(n int, backoff time.Duration) Option {
	return func(c *Client) {
		c.retries = n
		if backoff > 0 {
			c.baseBackoff = backoff
		}
	}
}

// WithMaxBackoff caps the backoff growth between retries.
func WithMaxBackoff(d time.Duration) Option {
	return func(c *Client) { c.maxBackoff = d }
}

// WithHeaders adds default headers applied to every request that does not
// already set them.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) {
		if c.headers == nil {
			c.headers = make(map[string]string, len(h))
		}
		for k, v := range h {
			c.headers[k] = v
		}
	}
}

// WithUserAgent overrides the default botlib User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTransport sets a custom transport, mainly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.hc.Transport = rt
		}
	}
}

// WithInsecureTLS disables certificate verification. Local development
// against self-signed botserver certificates only.
func WithInsecureTLS() Option {
	return func(c *Client) {
		if tr, ok := c.hc.Transport.(*http.Transport); ok {
			if tr.TLSClientConfig == nil {
				tr.TLSClientConfig = &tls.Config{}
			}
			tr.TLSClientConfig.InsecureSkipVerify = true
		}
	}
}

// New creates a configured Client.
func New(opts ...Option) *Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxIdleConns = 100
	tr.MaxConnsPerHost = 100
	tr.MaxIdleConnsPerHost = 100
	tr.IdleConnTimeout = 90 * time.Second
	tr.TLSHandshakeTimeout = 10 * time.Second
	tr.ResponseHeaderTimeout = 10 * time.Second

	c := &Client{
		hc: &http.Client{
			Timeout:   30 * time.Second,
			Transport: tr,
		},
		log:         slog.Default(),
		baseBackoff: 200 * time.Millisecond,
		userAgent:   botlib.Name + "/" + botlib.Version,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the configured endpoint prefix.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends the request with default headers, logging and retries. The
// returned error, if any, is a *Error wrapping the native transport
// failure; non-success status codes are not errors at this level (the
// JSON helpers turn them into errors).
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if req.Body != nil && req.GetBody == nil {
		body, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, wrapErr(req.Method, redact(req.URL), 0, err)
		}
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		req.Body, _ = req.GetBody()
	}

	retries := c.retries
	if !idempotent(req.Method) && req.Header.Get("Idempotency-Key") == "" {
		retries = 0
	}

	var lastErr error
	for attempt := 1; attempt <= retries+1; attempt++ {
		r := req.Clone(ctx)
		for k, v := range c.headers {
			if r.Header.Get(k) == "" {
				r.Header.Set(k, v)
			}
		}
		if r.Header.Get("User-Agent") == "" {
			r.Header.Set("User-Agent", c.userAgent)
		}
		if r.GetBody != nil {
			rc, err := r.GetBody()
			if err != nil {
				return nil, wrapErr(r.Method, redact(r.URL), 0, err)
			}
			r.Body = rc
		}

		u := redact(r.URL)
		start := time.Now()
		resp, err := c.hc.Do(r)
		dur := time.Since(start)

		delay, shouldRetry := retryInfo(resp, err)
		if shouldRetry && err == nil && attempt > retries {
			// Out of retries. Hand the response back with its body intact
			// so callers see the real status and payload.
			shouldRetry = false
		}
		if !shouldRetry {
			if err != nil {
				c.log.Warn("http request failed",
					slog.String("method", r.Method), slog.String("url", u),
					slog.Int("attempt", attempt), slog.Any("error", err))
				return nil, wrapErr(r.Method, u, 0, err)
			}
			c.log.Debug("http request",
				slog.String("method", r.Method), slog.String("url", u),
				slog.Int("status", resp.StatusCode), slog.Duration("dur", dur),
				slog.Int("attempt", attempt))
			return resp, nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode)
			drainAndClose(resp.Body)
		}
		c.log.Warn("http request retrying",
			slog.String("method", r.Method), slog.String("url", u),
			slog.Int("attempt", attempt), slog.Any("error", lastErr))

		if attempt > retries {
			break
		}
		wait := c.backoff(attempt)
		if delay > 0 {
			wait = delay
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, wrapErr(r.Method, u, 0, ctx.Err())
		}
	}
	return nil, wrapErr(req.Method, redact(req.URL), 0, lastErr)
}

// backoff returns the jittered exponential delay before the next attempt.
func (c *Client) backoff(attempt int) time.Duration {
	wait := c.baseBackoff * time.Duration(1<<uint(attempt-1))
	if wait > 0 {
		wait += time.Duration(randv2.Int63n(int64(wait)))
	}
	if c.maxBackoff > 0 && wait > c.maxBackoff {
		wait = c.maxBackoff
	}
	return wait
}

// retryInfo decides whether a response or transport error warrants a
// retry and returns the server-requested delay, if any. The body is left
// untouched; Do drains it only when another attempt follows.
func retryInfo(resp *http.Response, err error) (time.Duration, bool) {
	if err != nil {
		return 0, retry.DefaultRetryable(err)
	}
	switch {
	case resp.StatusCode == http.StatusRequestTimeout,
		resp.StatusCode == http.StatusTooEarly:
		return 0, true
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode >= 500:
		return retryAfter(resp.Header.Get("Retry-After")), true
	default:
		return 0, false
	}
}

// retryAfter parses a Retry-After header in either seconds or HTTP-date
// form.
func retryAfter(h string) time.Duration {
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions,
		http.MethodTrace, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// drainAndClose drains up to 512KB from the body and closes it.
func drainAndClose(b io.ReadCloser) {
	if b == nil {
		return
	}
	_, _ = io.CopyN(io.Discard, b, 512<<10)
	_ = b.Close()
}

func redact(u *url.URL) string {
	return u.Redacted()
}
