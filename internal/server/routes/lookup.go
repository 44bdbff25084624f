package routes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/orderlens/internal/app/domain"
	"github.com/fr0stylo/orderlens/internal/playauto"
	"github.com/fr0stylo/orderlens/internal/views"
)

// StockLookup resolves a search term into stock rows.
type StockLookup interface {
	Lookup(ctx context.Context, term string) ([]domain.StockRow, error)
}

// LookupRoutes serves the search form, result pages and the JSON API.
type LookupRoutes struct {
	lookup   StockLookup
	sessions sessions.Store
	log      *slog.Logger
}

// NewLookupRoutes constructs lookup routes.
func NewLookupRoutes(lookup StockLookup, store sessions.Store, log *slog.Logger) *LookupRoutes {
	if log == nil {
		log = slog.Default()
	}
	return &LookupRoutes{lookup: lookup, sessions: store, log: log}
}

// RegisterRoutes registers lookup routes.
func (l *LookupRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/", l.handleIndex)
	s.POST("/result/", l.handleResult)
	s.POST("/result", l.handleResult)
	s.GET("/api/stock", l.handleAPIStock)
	s.GET("/healthz", handleHealth)
}

func (l *LookupRoutes) handleIndex(c echo.Context) error {
	return c.Render(http.StatusOK, "", views.IndexPage(csrfToken(c), lastSearchTerm(c, l.sessions)))
}

func (l *LookupRoutes) handleResult(c echo.Context) error {
	ctx := c.Request().Context()
	term := strings.TrimSpace(c.FormValue("user_input"))

	rows, err := l.lookup.Lookup(ctx, term)
	if err != nil {
		status := lookupErrorStatus(err)
		l.log.WarnContext(ctx, "stock lookup failed", slog.String("error", err.Error()), slog.Int("status", status))
		return c.Render(status, "", views.ErrorPage(csrfToken(c), term, err.Error()))
	}

	if err := rememberSearchTerm(c, l.sessions, term); err != nil {
		l.log.WarnContext(ctx, "failed to save lookup session", slog.String("error", err.Error()))
	}
	return c.Render(http.StatusOK, "", views.ResultPage(csrfToken(c), term, rows))
}

func (l *LookupRoutes) handleAPIStock(c echo.Context) error {
	ctx := c.Request().Context()
	term := strings.TrimSpace(c.QueryParam("q"))

	rows, err := l.lookup.Lookup(ctx, term)
	if err != nil {
		status := lookupErrorStatus(err)
		if status >= http.StatusInternalServerError {
			l.log.ErrorContext(ctx, "stock lookup failed", slog.String("error", err.Error()), slog.Int("status", status))
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"term": term, "rows": rows})
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func lookupErrorStatus(err error) int {
	var (
		authErr  *playauto.AuthenticationError
		fetchErr *playauto.DataFetchError
	)
	switch {
	case errors.Is(err, domain.ErrInvalidSearchTerm):
		return http.StatusBadRequest
	case errors.As(err, &authErr), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
