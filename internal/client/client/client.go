// Package client implements the HTTP API client used by the CLI. It talks
// JSON to the gophtasks server and keeps the session token between calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const requestTimeout = 10 * time.Second

// Task mirrors the wire shape of a server-side task.
type Task struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// User mirrors the account payload returned by register and login.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("empty server address")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

// IsAuthenticated reports whether a session token is held.
func (c *Client) IsAuthenticated() bool {
	return c.token != ""
}

// Logout drops the session token. Sessions are stateless, so nothing is
// sent to the server.
func (c *Client) Logout() {
	c.token = ""
}

// Ping checks server reachability via the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil, http.StatusOK)
}

// Register creates an account and keeps the returned session token.
func (c *Client) Register(ctx context.Context, email string, password []byte) (*User, error) {
	body := map[string]string{"email": email, "password": string(password)}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp, http.StatusCreated); err != nil {
		return nil, err
	}

	c.token = resp.Token
	return &resp.User, nil
}

// Login authenticates and keeps the returned session token.
func (c *Client) Login(ctx context.Context, email string, password []byte) (*User, error) {
	body := map[string]string{"email": email, "password": string(password)}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp, http.StatusOK); err != nil {
		return nil, err
	}

	c.token = resp.Token
	return &resp.User, nil
}

// ListTasks returns the caller's tasks, newest first.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var list []Task
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list, nil
}

// AddTask creates a task with the given title.
func (c *Client) AddTask(ctx context.Context, title string) (*Task, error) {
	var task Task
	body := map[string]string{"title": title}
	if err := c.do(ctx, http.MethodPost, "/api/todos", body, &task, http.StatusCreated); err != nil {
		return nil, err
	}
	return &task, nil
}

// SetCompleted marks a task done or not done.
func (c *Client) SetCompleted(ctx context.Context, id int64, completed bool) (*Task, error) {
	var task Task
	body := map[string]bool{"completed": completed}
	path := fmt.Sprintf("/api/todos/%d", id)
	if err := c.do(ctx, http.MethodPatch, path, body, &task, http.StatusOK); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/todos/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, http.StatusOK)
}

// do performs one JSON request. A transport-level failure maps to
// ErrUnavailable; an unexpected status maps through the wire error code.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, wantStatus int) error {

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// apiError converts an error response body into one of the package
// sentinels. Unknown or missing codes fall back to ErrServer.
func apiError(resp *http.Response) error {
	var body errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch body.Error {
	case "email_exists":
		return ErrEmailExists
	case "invalid_credentials":
		return ErrInvalidCredentials
	case "unauthorized":
		return ErrUnauthorized
	case "invalid_input", "title_required", "invalid_id":
		return ErrInvalidInput
	case "not_found":
		return ErrNotFound
	}

	return fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
}
