// Package playauto is a client for the PlayAuto order-management API.
package playauto

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://openapi.playauto.io/api"

const contentTypeJSON = "application/json; charset=UTF-8"

var validate = validator.New()

// Credentials authenticate the account against the API.
type Credentials struct {
	APIKey        string `validate:"required"`
	AccountID     string `validate:"required,email"`
	AccountSecret string `validate:"required"`
}

// Client is safe for concurrent use. Construct one per process.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time

	mu      sync.Mutex
	session session
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient validates the credentials and returns an unauthenticated client.
func NewClient(creds Credentials, opts ...ClientOption) (*Client, error) {
	creds = Credentials{
		APIKey:        strings.TrimSpace(creds.APIKey),
		AccountID:     strings.TrimSpace(creds.AccountID),
		AccountSecret: creds.AccountSecret,
	}
	if err := validate.Struct(creds); err != nil {
		return nil, fmt.Errorf("invalid playauto credentials: %w", err)
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		creds:      creds,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithBaseURL overrides the API root.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source used for the search window.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("x-api-key", c.creds.APIKey)
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
}
