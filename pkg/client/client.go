package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/naveenspark/tilegrab/pkg/domain"
)

// DefaultBaseURL is the Google Map Tiles API host.
const DefaultBaseURL = "https://tile.googleapis.com"

const userAgent = "tilegrab"

// Client is the Map Tiles API client.
type Client struct {
	baseURL    string
	apiKey     string
	requestID  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRequestID sets the X-Request-Id header sent on every request.
func WithRequestID(id string) Option {
	return func(c *Client) {
		c.requestID = id
	}
}

// New creates a new API client.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateSession requests a tile session token.
func (c *Client) CreateSession(ctx context.Context, sr domain.SessionRequest) (*domain.Session, error) {
	data, err := json.Marshal(sr)
	if err != nil {
		return nil, fmt.Errorf("client.CreateSession: marshal body: %w", err)
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	resp, err := c.do(ctx, http.MethodPost, "/v1/createSession?"+params.Encode(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("client.CreateSession: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("client.CreateSession: %w: %w", ErrAuthenticationFailed, readHTTPError(resp))
	}

	var s domain.Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("client.CreateSession: decode response: %w", err)
	}
	if s.Token == "" {
		return nil, fmt.Errorf("client.CreateSession: %w", ErrMissingSessionToken)
	}
	return &s, nil
}

// GetTile requests one 2D tile and returns its body as a stream.
// The caller must close the returned body. On a non-200 status the body is
// closed here and the error wraps ErrTileFetchFailed.
func (c *Client) GetTile(ctx context.Context, session string, t domain.TileIndex) (io.ReadCloser, error) {
	params := url.Values{}
	params.Set("session", session)
	params.Set("key", c.apiKey)
	path := "/v1/2dtiles/" + strconv.Itoa(t.Zoom) + "/" + strconv.Itoa(t.X) + "/" + strconv.Itoa(t.Y) + "?" + params.Encode()

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("client.GetTile: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		httpErr := readHTTPError(resp)
		resp.Body.Close() //nolint:errcheck
		return nil, fmt.Errorf("client.GetTile %s: %w: %w", t, ErrTileFetchFailed, httpErr)
	}
	return resp.Body, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", userAgent)
	if c.requestID != "" {
		req.Header.Set("X-Request-Id", c.requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

// readHTTPError builds an HTTPError from a failed response.
// Google APIs report errors as {"error": {"code", "message", "status"}}.
func readHTTPError(resp *http.Response) *HTTPError {
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if err != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", err)}
	}
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
		return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error.Message}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(respBody))}
}
