package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrNoRefreshToken     = errors.New("no refresh token")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrInvalidCredentials:
		return e.Status == http.StatusUnauthorized
	case ErrAlreadyExists:
		return e.Status == http.StatusConflict
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

type Tokens struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	User *User `json:"user"`
	Tokens
}

// Client calls the shop API with bearer tokens. A request answered with 401
// is retried once after rotating the token pair.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.RWMutex
	tokens   Tokens
	onRotate func(context.Context, Tokens)

	refreshMu sync.Mutex
}

// NewClient takes the API root, e.g. "http://localhost:8080/api/v1".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) Tokens() Tokens {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens
}

func (c *Client) SetTokens(t Tokens) {
	c.mu.Lock()
	c.tokens = t
	c.mu.Unlock()
}

// OnRotate registers fn to be called with every token pair the client
// obtains through a refresh.
func (c *Client) OnRotate(fn func(context.Context, Tokens)) {
	c.mu.Lock()
	c.onRotate = fn
	c.mu.Unlock()
}

func (c *Client) Signup(ctx context.Context, username, email, password string) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &user, false)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var res LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &res, false)
	if err != nil {
		return nil, err
	}
	c.SetTokens(res.Tokens)
	return &res, nil
}

// Refresh rotates the token pair.
func (c *Client) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *Client) refreshLocked(ctx context.Context) error {
	refresh := c.Tokens().RefreshToken
	if refresh == "" {
		return ErrNoRefreshToken
	}

	var res LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": refresh}, &res, false); err != nil {
		return err
	}
	c.SetTokens(res.Tokens)

	c.mu.RLock()
	fn := c.onRotate
	c.mu.RUnlock()
	if fn != nil {
		fn(ctx, res.Tokens)
	}
	return nil
}

// Logout revokes the refresh token and forgets the pair locally even when
// the server call fails.
// Logout revokes the refresh token. The access token rides along as a
// Bearer header, even if expired, so CSRF protection treats the call as a
// non-browser request.
func (c *Client) Logout(ctx context.Context) error {
	t := c.Tokens()
	defer c.SetTokens(Tokens{})
	if t.RefreshToken == "" {
		return nil
	}
	return c.send(ctx, http.MethodPost, "/auth/logout", map[string]string{"refresh_token": t.RefreshToken}, nil, t.AccessToken)
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// do sends one JSON request. With auth set the access token is attached and
// a 401 triggers a single refresh and retry.
func (c *Client) do(ctx context.Context, method, path string, in, out any, auth bool) error {
	access := ""
	if auth {
		access = c.Tokens().AccessToken
	}

	err := c.send(ctx, method, path, in, out, access)

	var apiErr *APIError
	if !auth || !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		return err
	}

	if rErr := c.refreshIfCurrent(ctx, access); rErr != nil {
		return err
	}
	return c.send(ctx, method, path, in, out, c.Tokens().AccessToken)
}

// refreshIfCurrent rotates only if no other request has done so since used
// was read.
func (c *Client) refreshIfCurrent(ctx context.Context, used string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if cur := c.Tokens().AccessToken; cur != used && cur != "" {
		return nil
	}
	return c.refreshLocked(ctx)
}

func (c *Client) send(ctx context.Context, method, path string, in, out any, access string) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
