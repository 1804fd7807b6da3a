package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"remont/internal/config"
	"remont/internal/logging"
	"remont/internal/models"
)

// Client handles communication with the remote functions
type Client struct {
	// URLs of the remote functions
	Endpoints config.Endpoints

	// Sent as X-Admin-Token on admin calls
	AdminToken string

	// HTTP client shared by all calls
	client *http.Client

	// Deadline applied to every call on top of the caller's context
	timeout time.Duration

	limiter *rate.Limiter
	logger  *slog.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.client = h }
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the functions configured in cfg
func NewClient(cfg *config.Config, opts ...Option) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	c := &Client{
		Endpoints:  cfg.Endpoints,
		AdminToken: cfg.AdminToken,
		client:     &http.Client{},
		timeout:    cfg.RequestTimeout(),
		limiter:    limiter,
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type sessionKey struct{}

// WithSession attaches the verified user session to ctx. Calls made with it
// identify the user to the remote functions.
func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session attached to ctx
func SessionFrom(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*models.Session)
	return s, ok && s != nil
}

// request describes one call to a remote function
type request struct {
	function string
	endpoint string
	method   string
	query    url.Values
	body     interface{}
	admin    bool
}

// envelope is the part of every response that reports semantic failures
type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do sends req and decodes a successful response into out (when non-nil)
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	if req.endpoint == "" {
		return fmt.Errorf("%w: %s", ErrEndpointNotConfigured, req.function)
	}
	if req.admin && c.AdminToken == "" {
		return models.ErrAdminTokenRequired
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("error waiting for rate limiter: %w", err)
	}

	u, err := url.Parse(req.endpoint)
	if err != nil {
		return fmt.Errorf("invalid %s endpoint: %w", req.function, err)
	}
	if len(req.query) > 0 {
		q := u.Query()
		for k, vs := range req.query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if req.body != nil {
		jsonData, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("error marshalling request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if s, ok := SessionFrom(ctx); ok {
		httpReq.Header.Set("X-User-Id", strconv.Itoa(s.User.ID))
	}
	if req.admin {
		httpReq.Header.Set("X-Admin-Token", c.AdminToken)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Debug("request failed", "function", req.function, "method", req.method, "error", err)
		return fmt.Errorf("error making request: %w", err)
	}
	defer safelyCloseResponseBody(resp.Body, c.logger)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}
	c.logger.Debug("request finished",
		"function", req.function,
		"method", req.method,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	var env envelope
	_ = json.Unmarshal(data, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Error
		if msg == "" {
			msg = string(bytes.TrimSpace(data))
		}
		return &RemoteError{Function: req.function, StatusCode: resp.StatusCode, Message: msg}
	}
	if env.Success != nil && !*env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		return &RemoteError{Function: req.function, StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}
	return nil
}

func safelyCloseResponseBody(body io.ReadCloser, logger *slog.Logger) {
	if err := body.Close(); err != nil {
		logger.Warn("failed to close response body", "error", err)
	}
}
