package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"registry-service/pkg/session"
	"registry-service/prometheus"
)

// SessionGate guards every operation touching user-owned data. A missing or
// invalid session is not an error: the request is simply redirected to the
// login entry point.
func SessionGate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			return c.Redirect(http.StatusFound, "/")
		}

		claims, err := session.Validate(cookie.Value)
		if err != nil {
			prometheus.RecordAuthError("invalid_session")
			return c.Redirect(http.StatusFound, "/")
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("session_id", claims.SessionID)

		return next(c)
	}
}
