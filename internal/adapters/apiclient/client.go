// Package apiclient is the single request helper used to talk to the suwen
// backend API. Every backend response is a JSON envelope
// {statusCode, data?, message?}; Raw issues the call and Unwrap turns the
// envelope into a typed payload or an *EnvelopeError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Observer is notified around every backend call. Begin may return a derived
// context and may add headers to req before it is sent.
type Observer interface {
	Begin(ctx context.Context, name string, req *http.Request) (context.Context, EndFunc)
}

// EndFunc receives the outcome of the call started by Begin.
type EndFunc func(resp *http.Response, err error)

type noopObserver struct{}

func (noopObserver) Begin(ctx context.Context, _ string, _ *http.Request) (context.Context, EndFunc) {
	return ctx, func(*http.Response, error) {}
}

// Client issues backend calls relative to a base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	observer   Observer
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithObserver installs a call observer (tracing, metrics).
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// New builds a client. An empty baseURL sends paths unmodified. The default
// HTTP client has no timeout; calls are bounded by the caller's context.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimSpace(baseURL),
		observer:   noopObserver{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Raw issues req exactly once and returns the unparsed response. The caller
// owns the response body. Errors from encoding/json and net/http are returned
// as they are.
func (c *Client) Raw(ctx context.Context, req Request) (*http.Response, error) {
	var body io.Reader
	if req.JSONBody != nil {
		payload, err := json.Marshal(req.JSONBody)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method(), resolve(c.baseURL, req.target()), body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	ctx, end := c.observer.Begin(ctx, req.name(), httpReq)
	resp, err := c.httpClient.Do(httpReq.WithContext(ctx))
	end(resp, err)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Do issues req and unwraps its envelope into T.
func Do[T any](ctx context.Context, c *Client, req Request) (T, error) {
	resp, err := c.Raw(ctx, req)
	if err != nil {
		var zero T
		return zero, err
	}
	return Unwrap[T](resp)
}
