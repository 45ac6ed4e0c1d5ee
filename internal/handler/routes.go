package handler

import (
	"github.com/labstack/echo/v4"

	"registry-service/internal/middleware"
)

// RegisterRoutes mounts all endpoints on the given Echo instance
func RegisterRoutes(e *echo.Echo) {
	// Public routes
	e.GET("/", Index)
	e.POST("/submit", Submit)
	e.GET("/logout", Logout)
	e.GET("/health", HealthCheck)
	e.GET("/metrics", MetricsHandler)

	// Everything touching user-owned data sits behind the session gate
	e.GET("/dashboard", Dashboard, middleware.SessionGate)
	e.GET("/download/:id/consent", DownloadConsent, middleware.SessionGate)
	e.GET("/:kind/new", NewWizard, middleware.SessionGate)
	e.GET("/:kind/form/:step", ShowStep, middleware.SessionGate)
	e.POST("/:kind/form/:step", SubmitStep, middleware.SessionGate)
}
