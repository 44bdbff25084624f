package routes

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/fr0stylo/orderlens/internal/app/domain"
	portmocks "github.com/fr0stylo/orderlens/internal/app/ports/mocks"
	"github.com/fr0stylo/orderlens/internal/app/services"
	"github.com/fr0stylo/orderlens/internal/playauto"
	"github.com/fr0stylo/orderlens/internal/renderer"
)

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func newLookupRoutes(t *testing.T) (*LookupRoutes, *portmocks.MockOrderSearcher) {
	t.Helper()
	searcher := portmocks.NewMockOrderSearcher(t)
	svc := services.NewStockLookupService(searcher, "orders", quietLog)
	store := NewSessionStore(SessionConfig{Secret: "test-secret"})
	return NewLookupRoutes(svc, store, quietLog), searcher
}

func newFormContext(e *echo.Echo, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("csrf", "csrf-token")
	return c, rec
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = &renderer.Renderer{}
	return e
}

func samplePayload() domain.SearchPayload {
	return domain.SearchPayload{
		Results:     []domain.Record{{"uniq": "A", "shop_sale_name": "Blue mug"}},
		ResultsProd: []domain.Record{{"uniq": "A", "sku_cd": "S1", "stock_cd": "C1", "stock_cnt_real": json.Number("5")}},
	}
}

func TestHandleResultRendersTableAndRemembersTerm(t *testing.T) {
	routes, searcher := newLookupRoutes(t)
	e := newEcho()
	searcher.EXPECT().Search(mock.Anything, "orders", "INV-1").Return(samplePayload(), nil)

	form := url.Values{}
	form.Set("user_input", " INV-1 ")
	c, rec := newFormContext(e, http.MethodPost, "/result/", form)
	if err := routes.handleResult(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Blue mug") || !strings.Contains(body, `<td class="num">5</td>`) {
		t.Fatalf("expected rendered row, body=%q", body)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[0].Name != lookupSessionName {
		t.Fatalf("expected lookup session cookie, got %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	indexRec := httptest.NewRecorder()
	indexCtx := e.NewContext(req, indexRec)
	if err := routes.handleIndex(indexCtx); err != nil {
		t.Fatalf("index handler error: %v", err)
	}
	if !strings.Contains(indexRec.Body.String(), `value="INV-1"`) {
		t.Fatalf("expected remembered term in form, body=%q", indexRec.Body.String())
	}
}

func TestHandleResultShowsErrorText(t *testing.T) {
	routes, searcher := newLookupRoutes(t)
	e := newEcho()
	searcher.EXPECT().Search(mock.Anything, "orders", "INV-1").
		Return(domain.SearchPayload{}, &playauto.DataFetchError{Resource: "orders", StatusCode: http.StatusInternalServerError})

	form := url.Values{}
	form.Set("user_input", "INV-1")
	c, rec := newFormContext(e, http.MethodPost, "/result/", form)
	if err := routes.handleResult(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "failed to get orders data (status 500)") {
		t.Fatalf("expected error text, body=%q", rec.Body.String())
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("expected no session cookie on failure")
	}
}

func TestHandleResultRejectsEmptyInput(t *testing.T) {
	routes, _ := newLookupRoutes(t)
	e := newEcho()

	c, rec := newFormContext(e, http.MethodPost, "/result/", url.Values{})
	if err := routes.handleResult(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "search term is required") {
		t.Fatalf("expected validation message, body=%q", rec.Body.String())
	}
}

func TestHandleAPIStockReturnsRows(t *testing.T) {
	routes, searcher := newLookupRoutes(t)
	e := newEcho()
	searcher.EXPECT().Search(mock.Anything, "orders", "INV-1").Return(samplePayload(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stock?q=INV-1", nil)
	rec := httptest.NewRecorder()
	if err := routes.handleAPIStock(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Term string            `json:"term"`
		Rows []domain.StockRow `json:"rows"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Term != "INV-1" || len(body.Rows) != 1 || body.Rows[0].SKUCode != "S1" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestHandleAPIStockMapsErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"auth", &playauto.AuthenticationError{StatusCode: http.StatusUnauthorized}, http.StatusBadGateway},
		{"missing field", &domain.MissingFieldError{Field: domain.FieldSKUCode}, http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			routes, searcher := newLookupRoutes(t)
			e := newEcho()
			searcher.EXPECT().Search(mock.Anything, "orders", "INV").Return(domain.SearchPayload{}, tc.err)

			req := httptest.NewRequest(http.MethodGet, "/api/stock?q=INV", nil)
			rec := httptest.NewRecorder()
			if err := routes.handleAPIStock(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Fatalf("expected error body, got %q", rec.Body.String())
			}
		})
	}
}

func TestLookupErrorStatusForInvalidTerm(t *testing.T) {
	t.Parallel()

	err := errors.Join(domain.ErrInvalidSearchTerm)
	if got := lookupErrorStatus(err); got != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", got)
	}
}

func TestLastSearchTermClearsInvalidCookie(t *testing.T) {
	t.Parallel()

	e := newEcho()
	store := NewSessionStore(SessionConfig{Secret: "test-secret"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: lookupSessionName, Value: "tampered"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if term := lastSearchTerm(c, store); term != "" {
		t.Fatalf("expected empty term, got %q", term)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected cookie to be cleared, got %v", cookies)
	}
}
