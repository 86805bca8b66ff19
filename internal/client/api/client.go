// Package api is a small REST client for the redesocial server. Non-2xx
// responses come back as *Error values that unwrap to the matching
// internal/common sentinel, so callers use errors.Is exactly as the server does.
package api

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

	"github.com/dmitrijs2005/redesocial/internal/common"
	"github.com/dmitrijs2005/redesocial/internal/netx"
)

type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

type AccountInput struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

type LoginResult struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Token    string `json:"token"`
}

type AvatarUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	AuthorID  *int64    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostInput struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type Client struct {
	base  string
	http  *http.Client
	token string
}

// New returns a client for the server at base (e.g. "http://127.0.0.1:8080").
func New(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{
			Timeout: timeout,
			// avatar downloads are answered with a redirect we want to see
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// SetToken sets the "Bearer ..." value sent with authenticated requests.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil)
}

func (c *Client) Register(ctx context.Context, in AccountInput) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodPost, "/v1/accounts", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and, on success, keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var out LoginResult
	in := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/v1/sessions", in, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) UpdateAccount(ctx context.Context, in AccountInput) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodPut, "/v1/accounts", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var out []Account
	if err := c.do(ctx, http.MethodGet, "/v1/accounts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAccount(ctx context.Context, id int64) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/accounts/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AvatarUpload(ctx context.Context, id int64) (*AvatarUpload, error) {
	var out AvatarUpload
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/accounts/%d/avatar", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AvatarURL returns the presigned download URL the server redirects to.
func (c *Client) AvatarURL(ctx context.Context, id int64) (string, error) {
	resp, err := c.send(ctx, http.MethodGet, fmt.Sprintf("/v1/accounts/%d/avatar", id), nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTemporaryRedirect {
		return "", decodeError(resp)
	}
	return resp.Header.Get("Location"), nil
}

// ListPosts returns all posts, or only those whose title contains title when
// it is non-empty.
func (c *Client) ListPosts(ctx context.Context, title string) ([]Post, error) {
	path := "/v1/posts"
	if title != "" {
		path += "?" + url.Values{"title": {title}}.Encode()
	}
	var out []Post
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPost(ctx context.Context, id int64) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/posts/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePost(ctx context.Context, in PostInput) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodPost, "/v1/posts", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePost(ctx context.Context, id int64, in PostInput) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/v1/posts/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/posts/%d", id), nil, nil)
}

// UploadToPresignedURL PUTs data to an object storage URL.
func (c *Client) UploadToPresignedURL(ctx context.Context, url string, data []byte) error {
	return netx.PutObject(ctx, c.http, url, data)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}
