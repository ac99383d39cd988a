package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/doctorq/doctorq-sdk/pkg/metrics"
)

// Client performs requests against one backend.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     hclog.Logger
	metrics    *metrics.Metrics
}

// New creates a new Client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s client config: %w", cfg.Name, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = cfg.NewHTTPClient()
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		logger:     cfg.Logger.Named(cfg.Name + "-client"),
		metrics:    cfg.Metrics,
	}, nil
}

// Name returns the client name.
func (c *Client) Name() string {
	return c.config.Name
}

// BaseURL returns the remote base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// RequestOption customizes a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	params  Params
	headers map[string]string
}

// WithParams sets the query parameters of the request.
func WithParams(params Params) RequestOption {
	return func(o *requestOptions) {
		if o.params == nil {
			o.params = Params{}
		}
		for k, v := range params {
			o.params[k] = v
		}
	}
}

// WithHeader sets a header, overriding the defaults.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = map[string]string{}
		}
		o.headers[key] = value
	}
}

// WithHeaders sets several headers, overriding the defaults.
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) {
		for k, v := range headers {
			WithHeader(k, v)(o)
		}
	}
}

// Result is a successful response.
type Result struct {
	StatusCode int
	Body       json.RawMessage
}

// NoContent reports whether the response carried no body (HTTP 204).
func (r *Result) NoContent() bool {
	return r.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(r.Body)) == 0
}

// Decode unmarshals the body into v. It returns ErrNoContent for empty
// responses.
func (r *Result) Decode(v any) error {
	if r.NoContent() {
		return ErrNoContent
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Request performs a single request. ctx is the abort signal; data, when
// non-nil, is sent as the JSON body.
func (c *Client) Request(ctx context.Context, method, endpoint string, data any, opts ...RequestOption) (*Result, error) {
	var body io.Reader
	if data != nil {
		bodyBytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(bodyBytes)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := c.newRequest(ctx, method, endpoint, body, opts...)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, c.target(endpoint))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpError(resp, respBody)
	}

	return &Result{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// Get performs a GET and decodes the response into out when non-nil.
func (c *Client) Get(ctx context.Context, endpoint string, out any, opts ...RequestOption) error {
	return c.requestInto(ctx, http.MethodGet, endpoint, nil, out, opts...)
}

// Post performs a POST with data as the JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, data, out any, opts ...RequestOption) error {
	return c.requestInto(ctx, http.MethodPost, endpoint, data, out, opts...)
}

// Put performs a PUT with data as the JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, data, out any, opts ...RequestOption) error {
	return c.requestInto(ctx, http.MethodPut, endpoint, data, out, opts...)
}

// Patch performs a PATCH with data as the JSON body.
func (c *Client) Patch(ctx context.Context, endpoint string, data, out any, opts ...RequestOption) error {
	return c.requestInto(ctx, http.MethodPatch, endpoint, data, out, opts...)
}

// Delete performs a DELETE.
func (c *Client) Delete(ctx context.Context, endpoint string, out any, opts ...RequestOption) error {
	return c.requestInto(ctx, http.MethodDelete, endpoint, nil, out, opts...)
}

// requestInto performs the request and decodes into out. A response with
// no content leaves out untouched.
func (c *Client) requestInto(ctx context.Context, method, endpoint string, data, out any, opts ...RequestOption) error {
	result, err := c.Request(ctx, method, endpoint, data, opts...)
	if err != nil {
		return err
	}
	if out == nil || result.NoContent() {
		return nil
	}
	return result.Decode(out)
}

// Call performs a request and decodes the response into a new T. A response
// with no content returns (nil, nil).
func Call[T any](ctx context.Context, c *Client, method, endpoint string, data any, opts ...RequestOption) (*T, error) {
	result, err := c.Request(ctx, method, endpoint, data, opts...)
	if err != nil {
		return nil, err
	}
	if result.NoContent() {
		return nil, nil
	}

	out := new(T)
	if err := result.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

// URL resolves the full URL of endpoint with params, choosing the local
// proxy or the remote backend.
func (c *Client) URL(endpoint string, params Params) (string, error) {
	base := c.config.BaseURL
	if c.isLocal(endpoint) {
		if c.config.LocalBaseURL == "" {
			return "", ErrLocalRouteUnavailable
		}
		base = c.config.LocalBaseURL
	}

	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	target := base + endpoint
	if query := params.Encode(); query != "" {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		target += sep + query
	}
	return target, nil
}

func (c *Client) isLocal(endpoint string) bool {
	return c.config.LocalPrefix != "" && strings.HasPrefix(endpoint, c.config.LocalPrefix)
}

func (c *Client) target(endpoint string) string {
	if c.isLocal(endpoint) {
		return "local"
	}
	return c.config.Name
}

// newRequest builds the request with the resolved token and merged headers.
func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader, opts ...RequestOption) (*http.Request, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	target, err := c.URL(endpoint, o.params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.config.Credentials != nil {
		if token := c.config.Credentials.Current(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	for k, v := range o.headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// do executes req, recording metrics and normalizing transport failures.
func (c *Client) do(req *http.Request, target string) (*http.Response, error) {
	start := time.Now()

	c.metrics.RequestStarted()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.metrics.RequestFinished(target, req.Method, status, elapsed)

	if err != nil {
		c.logger.Debug("request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", req.Header.Get("X-Request-ID"),
			"duration", elapsed,
			"error", err,
		)
		return nil, networkError(err)
	}

	c.logger.Debug("request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get("X-Request-ID"),
		"status", resp.StatusCode,
		"duration", elapsed,
	)

	return resp, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.config.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.config.Timeout)
}
