// Package client is an embeddable Go client for the sneaker store API.
// It mirrors the REST surface one method per endpoint, carries the
// bearer token captured at login, and keeps a coarse per-collection
// cache of the last completed list fetch.  Mutating calls invalidate
// the affected caches and publish a notification on the client's bus.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// APIError is returned for any non-2xx response.  Message carries the
// server's error string when the body could be decoded.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// Session is what the auth endpoints return: the signed token plus the
// identity it was issued for and its expiry.
type Session struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Expires  time.Time `json:"expires"`
}

// Client talks to one API server.  It is safe for concurrent use.  The
// zero value is not usable; construct with New.
type Client struct {
	baseURL string
	httpc   *http.Client
	notify  *Notifier

	mu    sync.RWMutex
	token string

	sneakers snapshot[[]Sneaker]
	orders   snapshot[[]Order]
}

// New returns a Client for the API rooted at baseURL (no trailing
// slash needed).  A nil httpc falls back to a client with a 15 second
// timeout, matching the request-timeout-only cancellation model.
func New(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		httpc:   httpc,
		notify:  NewNotifier(),
	}
}

// Notifier exposes the client's notification bus so callers can
// subscribe to mutation outcomes.
func (c *Client) Notifier() *Notifier { return c.notify }

// SetToken installs a bearer token obtained elsewhere, e.g. restored
// from a previous session.
func (c *Client) SetToken(tok string) {
	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()
}

// Logout drops the bearer token and forgets all cached data.
func (c *Client) Logout() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	c.sneakers.Invalidate()
	c.orders.Invalidate()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do performs one request.  A non-nil in is sent as a JSON body; a
// non-nil out receives the decoded response.  Non-2xx statuses are
// turned into *APIError with the server's error message when present.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		bs, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(res.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// ----- auth -----

// Register creates an account and keeps the returned token for
// subsequent calls.
func (c *Client) Register(ctx context.Context, username, email, password string) (Session, error) {
	in := map[string]string{"username": username, "email": email, "password": password}
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &s); err != nil {
		return Session{}, err
	}
	c.SetToken(s.Token)
	return s, nil
}

// Login exchanges credentials for a token and keeps it for subsequent
// calls.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	in := map[string]string{"username": username, "password": password}
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &s); err != nil {
		return Session{}, err
	}
	c.SetToken(s.Token)
	return s, nil
}

// Profile is the identity the server extracted from the bearer token.
type Profile struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Me returns the identity behind the current token.
func (c *Client) Me(ctx context.Context) (Profile, error) {
	var p Profile
	err := c.do(ctx, http.MethodGet, "/api/me", nil, &p)
	return p, err
}
