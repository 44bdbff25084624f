package playauto

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fr0stylo/orderlens/internal/observability"
)

// State is the client's authentication state.
type State int

const (
	// StateUnauthenticated means no token was ever obtained.
	StateUnauthenticated State = iota
	// StateAuthenticated means a token is held and presumed valid.
	StateAuthenticated
	// StateExpired means the upstream rejected the held token.
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateExpired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

type session struct {
	state State
	token string
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponseItem struct {
	Token string `json:"token"`
}

// State reports the current authentication state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.state
}

// Token returns the held token, if the client is authenticated.
func (c *Client) Token() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.state != StateAuthenticated {
		return "", false
	}
	return c.session.token, true
}

// Expire marks the held token as rejected.
func (c *Client) Expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.state == StateAuthenticated {
		c.session.state = StateExpired
	}
}

// EnsureAuthenticated acquires a token unless one is already held.
func (c *Client) EnsureAuthenticated(ctx context.Context) error {
	_, err := c.authenticatedToken(ctx)
	return err
}

// authenticatedToken returns the held token, acquiring one when none is held.
func (c *Client) authenticatedToken(ctx context.Context) (string, error) {
	if token, ok := c.Token(); ok {
		return token, nil
	}
	return c.AcquireToken(ctx)
}

// AcquireToken exchanges the credentials for a token and stores it. On failure
// the previous session is left untouched.
func (c *Client) AcquireToken(ctx context.Context) (string, error) {
	ctx, span := observability.StartUpstreamSpan(ctx, "auth", "")
	defer span.End()

	token, err := c.requestToken(ctx, span)
	if err != nil {
		span.RecordError(err)
		c.logger.WarnContext(ctx, "playauto authentication failed", slog.String("error", err.Error()))
		return "", err
	}

	c.mu.Lock()
	c.session = session{state: StateAuthenticated, token: token}
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "playauto token acquired")
	return token, nil
}

func (c *Client) requestToken(ctx context.Context, span observability.Span) (string, error) {
	raw, err := json.Marshal(authRequest{Email: c.creds.AccountID, Password: c.creds.AccountSecret})
	if err != nil {
		return "", fmt.Errorf("encode auth request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth", bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("create auth request: %w", err)
	}
	c.setHeaders(req, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do auth request: %w", err)
	}
	defer resp.Body.Close()
	span.SetStatusCode(resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &AuthenticationError{StatusCode: resp.StatusCode}
	}

	var items []authResponseItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return "", &AuthenticationError{StatusCode: resp.StatusCode, Reason: "malformed response: " + err.Error()}
	}
	if len(items) == 0 {
		return "", &AuthenticationError{StatusCode: resp.StatusCode, Reason: "empty response"}
	}
	token := strings.TrimSpace(items[0].Token)
	if token == "" {
		return "", &AuthenticationError{StatusCode: resp.StatusCode, Reason: "missing token"}
	}
	return token, nil
}
