// Package client fetches the greeting from the greeting service and renders it
// into a page element.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultBaseURL = "http://localhost:3001"
	acceptHeader   = "application/json"
	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 1 << 20
)

// Client errors. Every failure returned by Fetch wraps exactly one of these.
var (
	ErrNetwork          = errors.New("greeting service unreachable")
	ErrUnexpectedStatus = errors.New("greeting service returned unexpected status")
	ErrMalformed        = errors.New("malformed greeting response")
	ErrMissingMessage   = fmt.Errorf("%w: message field missing", ErrMalformed)
)

// Greeting is the decoded service response.
type Greeting struct {
	Message string `json:"message"`
}

// wireGreeting distinguishes an absent or non-string message from an empty one.
type wireGreeting struct {
	Message *string `json:"message"`
}

// Client issues the greeting request.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the absolute URL that is fetched.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a greeting client. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL reports the URL the client fetches.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch performs one GET against the base URL and decodes the greeting.
func (c *Client) Fetch(ctx context.Context) (*Greeting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	// The whole body must be a single JSON value.
	var wire wireGreeting
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if wire.Message == nil {
		return nil, ErrMissingMessage
	}
	return &Greeting{Message: *wire.Message}, nil
}
