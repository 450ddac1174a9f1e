package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/logger"
)

const (
	// MaxReauthRetries is how many times one request may re-authenticate after a 401.
	MaxReauthRetries = 2

	// TokenCookie is the cookie the server reads the application token from.
	TokenCookie = "application"

	// HeaderRequestID correlates client and server logs.
	HeaderRequestID = "X-Request-ID"

	contentTypeJSON  = "application/json"
	contentTypePlain = "text/plain"
)

// Authenticator supplies the application token and renews it on demand.
type Authenticator interface {
	// Token returns the current application token, or empty if signed out.
	Token() string

	// Reauthenticate obtains a fresh token from the identity provider and
	// exchanges it with the server.
	Reauthenticate(ctx context.Context) error
}

// RequestOptions describes one API call.
type RequestOptions struct {
	// URL is absolute, or a path resolved against the client's base URL.
	URL string

	// Method defaults to GET.
	Method string

	// Headers are merged over the default headers.
	Headers map[string]string

	// Body is JSON-encoded when present. Nil, including a typed nil, means no body.
	Body any

	// SkipReauth surfaces a 401 without re-authenticating. The sign-in
	// exchange sets it so it never recurses into itself.
	SkipReauth bool
}

// Client performs Rocket Fuel API calls.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter

	mu   sync.RWMutex
	auth Authenticator
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds each attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithRateLimit throttles outbound requests to rps per second. Zero disables throttling.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithAuthenticator sets the token source used for every request.
func WithAuthenticator(a Authenticator) Option {
	return func(c *Client) {
		c.auth = a
	}
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	normalized, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: normalized,
		http:    &http.Client{Timeout: domain.DefaultAPITimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NormalizeBaseURL validates a server origin and strips any trailing slash.
func NormalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: base url is required", domain.ErrInvalidInput)
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: base url: %w", domain.ErrInvalidInput, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: base url %q", domain.ErrInvalidInput, raw)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	return parsed.String(), nil
}

// BaseURL returns the normalized server origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetAuthenticator sets the token source after construction.
// The session service needs a client before it exists, so the two are wired late.
func (c *Client) SetAuthenticator(a Authenticator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth = a
}

func (c *Client) authenticator() Authenticator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.auth
}

// Do performs the request and decodes a JSON response into out.
// A nil out discards the body. A 204 leaves out untouched.
func (c *Client) Do(ctx context.Context, opts RequestOptions, out any) error {
	resp, err := c.send(ctx, opts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", resp.Request.Method, resp.Request.URL.Path, err)
	}
	return nil
}

// Fetch performs the request and returns the raw JSON response.
// A 204 yields an empty object.
func (c *Client) Fetch(ctx context.Context, opts RequestOptions) (json.RawMessage, error) {
	resp, err := c.send(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return json.RawMessage("{}"), nil
	}
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", resp.Request.Method, resp.Request.URL.Path, err)
	}
	return raw, nil
}

// send runs the attempt loop and returns the first non-401 response.
// The caller owns the response body and gets non-success statuses as *HTTPError.
func (c *Client) send(ctx context.Context, opts RequestOptions) (*http.Response, error) {
	target, err := c.resolve(opts.URL)
	if err != nil {
		return nil, err
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	method = strings.ToUpper(method)

	var payload []byte
	hasBody := !isAbsent(opts.Body)
	if hasBody {
		payload, err = json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	for attempt := 0; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := c.newRequest(ctx, method, target, opts.Headers, payload, hasBody)
		if err != nil {
			return nil, err
		}
		logger.Fields("api: request", map[string]any{
			"method":  method,
			"url":     target,
			"attempt": attempt + 1,
			"request": req.Header.Get(HeaderRequestID),
		})

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		httpErr := readError(resp, method, target)
		if resp.StatusCode != http.StatusUnauthorized {
			logger.Debug("api: %s %s failed: %s", method, target, resp.Status)
			return nil, httpErr
		}

		auth := c.authenticator()
		if opts.SkipReauth || auth == nil || attempt >= MaxReauthRetries {
			logger.Warn("api: %s %s unauthorized, giving up after %d attempts", method, target, attempt+1)
			return nil, httpErr
		}

		logger.Info("api: %s %s unauthorized, re-authenticating", method, target)
		if err := auth.Reauthenticate(ctx); err != nil {
			if errors.Is(err, domain.ErrReauthenticationFailed) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", domain.ErrReauthenticationFailed, err)
		}
	}
}

func (c *Client) resolve(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: request url is required", domain.ErrInvalidInput)
	}
	if strings.Contains(raw, "://") {
		return raw, nil
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return c.baseURL + raw, nil
}

func (c *Client) newRequest(
	ctx context.Context, method, target string, headers map[string]string, payload []byte, hasBody bool,
) (*http.Request, error) {
	var body io.Reader
	if hasBody {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Access-Control-Allow-Origin", "*")
	req.Header.Set("Access-Control-Allow-Credentials", "true")
	req.Header.Set("Content-Type", contentTypeJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if !hasBody {
		req.Header.Set("Content-Type", contentTypePlain)
	}
	req.Header.Set(HeaderRequestID, uuid.NewString())

	if auth := c.authenticator(); auth != nil {
		if token := auth.Token(); token != "" {
			req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
		}
	}
	return req, nil
}

func readError(resp *http.Response, method, target string) *HTTPError {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Method:     method,
		URL:        target,
		Header:     resp.Header.Clone(),
		Body:       bytes.TrimSpace(body),
	}
}

// isAbsent reports whether a request body should be treated as missing.
func isAbsent(body any) bool {
	if body == nil {
		return true
	}
	v := reflect.ValueOf(body)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
