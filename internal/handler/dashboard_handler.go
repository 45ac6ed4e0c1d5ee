package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"registry-service/internal/store"
	"registry-service/pkg/database"
	"registry-service/pkg/logger"
	"registry-service/prometheus"
)

// Dashboard lists the authenticated user's records, most recent first
func Dashboard(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get("user_id").(uint)

	defer prometheus.TrackDBOperation("query")(time.Now())
	records := store.NewRecordStore(database.GetDB())
	list, err := records.ListByUser(userID)
	if err != nil {
		log.Error("Failed to list records", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load records"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"username": c.Get("username"),
		"records":  list,
		"count":    len(list),
	})
}
