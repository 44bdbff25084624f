package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/fr0stylo/orderlens/internal/app/domain"
	"github.com/fr0stylo/orderlens/internal/server/routes"
)

type stubLookup struct {
	mu    sync.Mutex
	terms []string
}

func (s *stubLookup) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.terms...)
}

func (s *stubLookup) Lookup(_ context.Context, term string) ([]domain.StockRow, error) {
	s.mu.Lock()
	s.terms = append(s.terms, term)
	s.mu.Unlock()
	return []domain.StockRow{{ShopSaleName: "X", SKUCode: "S1", StockCode: "C1", StockCount: "5"}}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *stubLookup) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	lookup := &stubLookup{}
	srv := New(log)
	srv.RegisterRouter(routes.NewLookupRoutes(lookup, routes.NewSessionStore(routes.SessionConfig{Secret: "test"}), log))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, lookup
}

func TestServerHealthz(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatal("expected request id header")
	}
}

func TestServerAPIBypassesCSRF(t *testing.T) {
	ts, lookup := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/stock?q=INV-1")
	if err != nil {
		t.Fatalf("GET /api/stock error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body["rows"]; !ok {
		t.Fatalf("expected rows in body, got %v", body)
	}
	if len(lookup.seen()) != 1 || lookup.seen()[0] != "INV-1" {
		t.Fatalf("unexpected lookups %v", lookup.seen())
	}
}

func TestServerFormPostRequiresCSRFToken(t *testing.T) {
	ts, lookup := newTestServer(t)

	form := url.Values{}
	form.Set("user_input", "INV-1")
	resp, err := http.Post(ts.URL+"/result/", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("POST /result/ error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 400 {
		t.Fatalf("expected CSRF rejection, got %d", resp.StatusCode)
	}
	if len(lookup.seen()) != 0 {
		t.Fatalf("lookup ran without CSRF token: %v", lookup.seen())
	}
}

func TestServerIndexRendersForm(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(raw), `name="user_input"`) || !strings.Contains(string(raw), `name="_csrf" value="`) {
		t.Fatalf("expected search form, body=%q", string(raw))
	}
}
