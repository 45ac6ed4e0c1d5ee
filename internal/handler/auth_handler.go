package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"registry-service/internal/store"
	"registry-service/pkg/database"
	"registry-service/pkg/logger"
	"registry-service/pkg/session"
	"registry-service/prometheus"
)

// Index is the login entry point. A valid session skips straight to the
// dashboard.
func Index(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if _, err := session.Validate(cookie.Value); err == nil {
			return c.Redirect(http.StatusFound, "/dashboard")
		}
	}

	resp := echo.Map{"page": "login"}
	if errCode := c.QueryParam("error"); errCode != "" {
		resp["error"] = errCode
	}
	return c.JSON(http.StatusOK, resp)
}

// Submit handles the login form: CAPTCHA check first, then the credential
// check. Both failures come back as redirects with an inline error code, not
// as HTTP errors.
func Submit(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	username := c.FormValue("username")
	password := c.FormValue("password")
	solution := c.FormValue("frc-captcha-solution")

	if !captchaClient.Verify(solution) {
		log.Info("Login rejected by CAPTCHA", zap.String("username", username))
		prometheus.RecordAuthError("captcha_failed")
		return c.Redirect(http.StatusFound, "/?error=captcha_failed")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	creds := store.NewCredentialStore(database.GetDB())
	userID, ok := creds.Verify(username, password)
	if !ok {
		log.Info("Login failed", zap.String("username", username))
		prometheus.RecordAuthError("invalid_credentials")
		return c.Redirect(http.StatusFound, "/?error=invalid_credentials")
	}

	token, sessionID, err := session.New(userID, username)
	if err != nil {
		log.Error("Failed to create session", zap.Error(err))
		prometheus.RecordAuthError("session_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(session.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	prometheus.ActiveSessionsGauge.Inc()
	log.Info("User logged in",
		zap.String("username", username),
		zap.Uint("user_id", userID),
		zap.String("session_id", sessionID))

	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout expires the session cookie and drops any in-progress wizard slot
func Logout(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if claims, err := session.Validate(cookie.Value); err == nil {
			slots.Clear(claims.SessionID)
			prometheus.ActiveSessionsGauge.Dec()
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.Redirect(http.StatusFound, "/")
}
