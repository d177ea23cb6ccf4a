// Package client talks to the portal REST API.
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

	"edu_portal/internal/model"
)

// DefaultTimeout bounds a single API call
const DefaultTimeout = 10 * time.Second

const maxErrorBody = 64 << 10

// TokenSource supplies the bearer credential for directory calls
type TokenSource interface {
	Token() string
}

// Client is an API client; it is safe for concurrent use
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	tokens     TokenSource
}

type Option func(*Client)

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource attaches credentials to directory calls
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Signup registers an account. The caller validates input beforehand.
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) error {
	return c.do(ctx, http.MethodPost, "/api/auth/signup", false, req, nil)
}

// Login exchanges credentials for a token and the account's role
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", false, req, &resp); err != nil {
		return model.LoginResponse{}, err
	}
	return resp, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/users", true, nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), true, nil, &user)
	return user, err
}

// UpdateUser sends a full replacement and returns the canonical record
func (c *Client) UpdateUser(ctx context.Context, id string, upd model.UserUpdate) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), true, upd, &user)
	return user, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), true, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, authed bool, body, out any) error {
	var token string
	if authed {
		if c.tokens != nil {
			token = c.tokens.Token()
		}
		if token == "" {
			return ErrNotAuthenticated
		}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &TimeoutError{Err: err}
		}
		return &ServerError{Status: resp.StatusCode, Message: "malformed response: " + err.Error()}
	}
	return nil
}

func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return &TimeoutError{Err: err}
	}
	return &NetworkError{Err: err}
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = json.Unmarshal(raw, &payload)

	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg == "" {
			msg = "Authentication failed"
		}
		return &AuthError{Status: resp.StatusCode, Message: msg}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
		if msg == "" {
			msg = "unexpected response"
		}
	}
	return &ServerError{Status: resp.StatusCode, Message: msg}
}
