package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"registry-service/internal/store"
	"registry-service/pkg/database"
	"registry-service/pkg/logger"
	"registry-service/prometheus"
)

// DownloadConsent streams a record's consent document to its owner. Absent
// records, records owned by someone else, records without a document and
// documents missing on disk all answer the same 404.
func DownloadConsent(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get("user_id").(uint)

	recordID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	records := store.NewRecordStore(database.GetDB())
	ref, err := records.DocumentRef(uint(recordID), userID)
	if err != nil {
		log.Error("Failed to look up document", zap.Uint64("record_id", recordID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	if ref == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	path, ok := uploads.Path(ref.StorageName)
	if !ok {
		log.Warn("Document referenced but missing on disk",
			zap.Uint64("record_id", recordID),
			zap.String("storage_name", ref.StorageName))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	return c.Attachment(path, ref.OriginalName)
}
