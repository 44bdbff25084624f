package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	lookupSessionName        = "orderlens-lookup"
	lookupSessionLastTermKey = "lastTerm"
)

// SessionConfig configures the cookie store that remembers the last search.
type SessionConfig struct {
	Secret        string
	SecureCookies bool
}

// NewSessionStore builds the cookie-backed session store.
func NewSessionStore(config SessionConfig) sessions.Store {
	store := sessions.NewCookieStore([]byte(config.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func lastSearchTerm(c echo.Context, store sessions.Store) string {
	sess, err := store.Get(c.Request(), lookupSessionName)
	if err != nil {
		if isInvalidSecureCookieError(err) {
			clearSessionCookie(c, lookupSessionName)
		}
		return ""
	}
	term, _ := sess.Values[lookupSessionLastTermKey].(string)
	return term
}

func rememberSearchTerm(c echo.Context, store sessions.Store, term string) error {
	sess, err := store.Get(c.Request(), lookupSessionName)
	if err != nil && !isInvalidSecureCookieError(err) {
		return err
	}
	sess.Values[lookupSessionLastTermKey] = term
	return sess.Save(c.Request(), c.Response())
}

func isInvalidSecureCookieError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "securecookie") {
		return false
	}
	return strings.Contains(msg, "not valid") || strings.Contains(msg, "name not registered for interface")
}

func clearSessionCookie(c echo.Context, name string) {
	http.SetCookie(c.Response(), &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func csrfToken(c echo.Context) string {
	value, ok := c.Get("csrf").(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
