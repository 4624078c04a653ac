package simon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"simon-jot/internal/contextutil"
)

const (
	// DefaultMaxRetries is the number of extra attempts made for transient failures.
	DefaultMaxRetries = 2

	retryBaseDelay = 250 * time.Millisecond
	retryMaxDelay  = 4 * time.Second

	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 4 << 20
)

// Client talks to the Simon backend: session start, brainstorm prompts and chat answers.
type Client struct {
	BaseURL       string
	GoogleMapsKey string
	Providers     []string

	client     *http.Client
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	group      singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithGoogleMapsKey sets the key forwarded to the map provider on session start.
func WithGoogleMapsKey(key string) Option {
	return func(c *Client) {
		c.GoogleMapsKey = key
	}
}

// WithProviders sets the providers requested on session start.
func WithProviders(providers ...string) Option {
	return func(c *Client) {
		c.Providers = providers
	}
}

// WithMaxRetries sets how many times a transient failure is retried. Negative values disable
// retries.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		c.maxRetries = n
	}
}

// WithRateLimit bounds outbound requests to r per second with the given burst.
func WithRateLimit(r float64, burst int) Option {
	return func(c *Client) {
		if r <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// WithBackoff overrides the retry delays.
func WithBackoff(base, max time.Duration) Option {
	return func(c *Client) {
		c.baseDelay = base
		c.maxDelay = max
	}
}

// NewClient creates a new Simon client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Providers:  []string{"map"},
		client:     http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Inf, 0),
		maxRetries: DefaultMaxRetries,
		baseDelay:  retryBaseDelay,
		maxDelay:   retryMaxDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartSession opens a backend session and returns its id.
func (c *Client) StartSession(ctx context.Context) (string, error) {
	query := url.Values{}
	if len(c.Providers) > 0 {
		query.Set("providers", strings.Join(c.Providers, ","))
	}

	body, err := json.Marshal(StartRequest{GoogleMapsKey: c.GoogleMapsKey})
	if err != nil {
		return "", &RequestFailedError{Op: "start", Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	raw, err := c.do(ctx, "start", http.MethodPost, "start", query, body)
	if err != nil {
		return "", err
	}

	var resp StartResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", &RequestFailedError{Op: "start", StatusCode: http.StatusOK, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if resp.SessionID == "" {
		return "", &RequestFailedError{Op: "start", StatusCode: http.StatusOK, Message: "no session_id returned"}
	}

	return resp.SessionID, nil
}

// Brainstorm asks the backend for follow-up prompts about text. Concurrent calls for the same
// session and text share one request.
func (c *Client) Brainstorm(ctx context.Context, text, session string) (Brainstorm, error) {
	v, err, _ := c.group.Do(session+"\x00"+text, func() (any, error) {
		return c.brainstorm(ctx, text, session)
	})
	if err != nil {
		return Brainstorm{}, err
	}

	b := v.(Brainstorm)
	b.Questions = append([]string(nil), b.Questions...)
	return b, nil
}

func (c *Client) brainstorm(ctx context.Context, text, session string) (Brainstorm, error) {
	query := url.Values{}
	query.Set("q", text)
	query.Set("session_id", session)

	raw, err := c.do(ctx, "brainstorm", http.MethodGet, "brainstorm", query, nil)
	if err != nil {
		return Brainstorm{}, err
	}

	var resp BrainstormResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Brainstorm{}, &RequestFailedError{Op: "brainstorm", StatusCode: http.StatusOK, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return resp.Response, nil
}

// Chat asks the backend a question and returns its widget answer.
func (c *Client) Chat(ctx context.Context, text, session string) (ChatResponse, error) {
	query := url.Values{}
	query.Set("q", text)
	query.Set("session_id", session)

	raw, err := c.do(ctx, "chat", http.MethodGet, "chat", query, nil)
	if err != nil {
		return ChatResponse{}, err
	}

	var resp ChatEnvelope
	if err := json.Unmarshal(raw, &resp); err != nil {
		return ChatResponse{}, &RequestFailedError{Op: "chat", StatusCode: http.StatusOK, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return resp.Response, nil
}

// Ping checks that the backend answers HTTP at all. Any response, whatever its status,
// counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/", nil)
	if err != nil {
		return &RequestFailedError{Op: "ping", Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &RequestFailedError{Op: "ping", Err: err}
	}
	_ = resp.Body.Close()
	return nil
}

// do sends a request, retrying transient failures with exponential backoff.
func (c *Client) do(ctx context.Context, op, method, route string, query url.Values, body []byte) ([]byte, error) {
	logger := contextutil.LoggerFromContext(ctx)

	endpoint := c.BaseURL + "/" + route
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff(attempt - 1)
			logger.DebugContext(ctx, "retrying simon request", "op", op, "attempt", attempt, "delay", delay, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, &RequestFailedError{Op: op, Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &RequestFailedError{Op: op, Err: err}
		}

		raw, err := c.attempt(ctx, op, method, endpoint, body)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !retryable(err) {
			return nil, err
		}
	}

	logger.WarnContext(ctx, "simon request failed after retries", "op", op, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, op, method, endpoint string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &RequestFailedError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &RequestFailedError{Op: op, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &RequestFailedError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestFailedError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil && eb.Status == "error" {
		return nil, &RequestFailedError{Op: op, StatusCode: resp.StatusCode, Message: eb.Message}
	}

	return raw, nil
}

// backoff returns the delay before retry n (0-based): base, 2*base, 4*base, capped at max.
func (c *Client) backoff(n int) time.Duration {
	delay := c.baseDelay * time.Duration(1<<uint(n))
	if delay > c.maxDelay || delay <= 0 {
		delay = c.maxDelay
	}
	return delay
}

func errorMessage(raw []byte) string {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil && eb.Message != "" {
		return eb.Message
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
