// Package client is a typed client for the REST API. Every non-2xx
// response and every transport failure is returned as *RemoteError.
// Requests are never retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/interfaces/http/dto"
)

// ErrCodeRemote is the code of failures that produced no API error body
const ErrCodeRemote = "REMOTE_ERROR"

const maxResponseSize = 16 << 20

// RemoteError is a failed API call. Status is 0 when no response arrived.
type RemoteError struct {
	Status  int
	Code    string
	Message string
	Details []dto.ValidationDetail
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// Is lets errors.Is match a RemoteError against the shared domain errors by code
func (e *RemoteError) Is(target error) bool {
	var domainErr *shared.DomainError
	if errors.As(target, &domainErr) {
		return domainErr.Code == e.Code
	}
	return false
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets the bearer token sent with every request
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the per-request timeout of the default http.Client
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// Client calls the REST API under <baseURL>/api/v1
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api/v1",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token
func (c *Client) Token() string {
	return c.token
}

// envelope mirrors dto.Response with data left raw
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("client: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("client: failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// send performs the request and returns the raw body of a 2xx response
func (c *Client) send(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &RemoteError{Code: ErrCodeRemote, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, nil, &RemoteError{Status: resp.StatusCode, Code: ErrCodeRemote, Message: "failed to read response: " + err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, remoteErrorFrom(resp.StatusCode, raw)
	}
	return resp, raw, nil
}

func remoteErrorFrom(status int, raw []byte) *RemoteError {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil && env.Error.Code != "" {
		return &RemoteError{
			Status:  status,
			Code:    env.Error.Code,
			Message: env.Error.Message,
			Details: env.Error.Details,
		}
	}
	message := http.StatusText(status)
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) <= 200 {
		message = text
	}
	return &RemoteError{Status: status, Code: ErrCodeRemote, Message: message}
}

// do sends a JSON request and decodes the envelope's data into out.
// out may be nil; the pagination meta is returned when present.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*dto.Meta, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	resp, raw, err := c.send(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &RemoteError{Status: resp.StatusCode, Code: ErrCodeRemote, Message: "malformed response body"}
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &RemoteError{Status: resp.StatusCode, Code: ErrCodeRemote, Message: "unexpected response data: " + err.Error()}
		}
	}
	return env.Meta, nil
}

// Page is one page of a list endpoint
type Page[T any] struct {
	Items []T      `json:"items"`
	Meta  dto.Meta `json:"meta"`
}

func list[T any](ctx context.Context, c *Client, path string, query url.Values) (*Page[T], error) {
	var items []T
	meta, err := c.do(ctx, http.MethodGet, path, query, nil, &items)
	if err != nil {
		return nil, err
	}
	page := &Page[T]{Items: items}
	if meta != nil {
		page.Meta = *meta
	}
	return page, nil
}
