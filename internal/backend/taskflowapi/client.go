// Package taskflowapi implements the service.Service interface against
// the Taskflow REST backend.
package taskflowapi

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

	"taskflow/internal/apierr"
	"taskflow/internal/service"
)

const (
	// APITimeout is the per-call timeout.
	APITimeout = 10 * time.Second

	// maxErrorBody caps how much of an error response body is kept.
	maxErrorBody = 4 << 10
)

// Client implements service.Service over HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: APITimeout},
	}
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

// Register implements service.Service.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	return c.authCall(ctx, "/auth/register", username, password)
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	return c.authCall(ctx, "/auth/login", username, password)
}

func (c *Client) authCall(ctx context.Context, path, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, path, "", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &apierr.Error{Kind: apierr.Unknown, Err: fmt.Errorf("backend returned no token")}
	}
	return resp.Token, nil
}

// Refresh implements service.Service.
func (c *Client) Refresh(ctx context.Context, token string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", token, nil, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &apierr.Error{Kind: apierr.Unknown, Err: fmt.Errorf("backend returned no token")}
	}
	return resp.Token, nil
}

// ListTodos implements service.Service.
func (c *Client) ListTodos(ctx context.Context, token string) ([]service.Todo, error) {
	var todos []service.Todo
	if err := c.do(ctx, http.MethodGet, "/todos", token, nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// GetTodo implements service.Service.
func (c *Client) GetTodo(ctx context.Context, token, id string) (service.Todo, error) {
	var todo service.Todo
	if err := c.do(ctx, http.MethodGet, "/todos/"+url.PathEscape(id), token, nil, &todo); err != nil {
		return service.Todo{}, err
	}
	return todo, nil
}

// CreateTodo implements service.Service.
func (c *Client) CreateTodo(ctx context.Context, token, title, description string) (service.Todo, error) {
	body := map[string]string{"title": title, "description": description}
	var todo service.Todo
	if err := c.do(ctx, http.MethodPost, "/todos", token, body, &todo); err != nil {
		return service.Todo{}, err
	}
	return todo, nil
}

// UpdateTodo implements service.Service.
func (c *Client) UpdateTodo(ctx context.Context, token, id, title, description string) (service.Todo, error) {
	body := map[string]string{"title": title, "description": description}
	var todo service.Todo
	if err := c.do(ctx, http.MethodPut, "/todos/"+url.PathEscape(id), token, body, &todo); err != nil {
		return service.Todo{}, err
	}
	return todo, nil
}

// ToggleTodo implements service.Service.
func (c *Client) ToggleTodo(ctx context.Context, token, id string) (service.Todo, error) {
	var todo service.Todo
	if err := c.do(ctx, http.MethodPatch, "/todos/"+url.PathEscape(id)+"/toggle", token, nil, &todo); err != nil {
		return service.Todo{}, err
	}
	return todo, nil
}

// DeleteTodo implements service.Service.
func (c *Client) DeleteTodo(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), token, nil, nil)
}

// Ping implements service.Service.
func (c *Client) Ping(ctx context.Context) (service.Health, error) {
	var h service.Health
	if err := c.do(ctx, http.MethodGet, "/health/ping", "", nil, &h); err != nil {
		return service.Health{}, err
	}
	return h, nil
}

// do issues one request. A non-2xx response becomes an apierr.Error
// carrying the status and body text; a transport failure becomes a
// NetworkFailure. out may be nil for 204 responses.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return apierr.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apierr.FromStatus(resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
