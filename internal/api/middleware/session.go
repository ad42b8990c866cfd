package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CookieName is the single browser cookie the gateway issues. Its value is
// an opaque session id; all per-session state hangs off it server-side.
const CookieName = "lm_session"

const sessionIDKey = "session_id"

// SessionCookie ensures every request carries a session id: an existing
// cookie is reused, otherwise a fresh id is issued. The id lands in the echo
// context for handlers and the guard.
func SessionCookie() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(CookieName); err == nil {
				id = cookie.Value
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(sessionIDKey, id)
			return next(c)
		}
	}
}

// SessionID returns the session id injected by SessionCookie.
func SessionID(c echo.Context) string {
	id, _ := c.Get(sessionIDKey).(string)
	return id
}
