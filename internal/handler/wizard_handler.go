package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"registry-service/internal/store"
	"registry-service/internal/wizard"
	"registry-service/pkg/database"
	"registry-service/pkg/logger"
	"registry-service/prometheus"
)

// NewWizard starts a fresh wizard run for the requested record kind. Any
// abandoned slot for the session is overwritten.
func NewWizard(c echo.Context) error {
	schema, ok := schemas[c.Param("kind")]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown record kind"})
	}
	sessionID := c.Get("session_id").(string)

	seed := make(map[string]string)
	for param, field := range schema.SeedParams {
		if v := c.QueryParam(param); v != "" {
			seed[field] = v
		}
	}

	slots.Reset(sessionID, schema.Kind, seed)
	prometheus.WizardSlotsGauge.Set(float64(slots.Len()))

	return c.Redirect(http.StatusFound, fmt.Sprintf("/%s/form/1", schema.Kind))
}

// ShowStep renders the given step's declared fields with their current slot
// values. Viewing is idempotent; an out-of-range step redirects to step 1.
func ShowStep(c echo.Context) error {
	schema, ok := schemas[c.Param("kind")]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown record kind"})
	}

	k, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		return c.Redirect(http.StatusFound, fmt.Sprintf("/%s/form/1", schema.Kind))
	}
	step, ok := schema.Step(k)
	if !ok {
		return c.Redirect(http.StatusFound, fmt.Sprintf("/%s/form/1", schema.Kind))
	}

	sessionID := c.Get("session_id").(string)
	slot, ok := slots.Peek(sessionID)
	if !ok || slot.Kind != schema.Kind {
		slot = wizard.Slot{Kind: schema.Kind, Values: map[string]string{}}
	}

	resp := echo.Map{
		"kind":        schema.Kind,
		"step":        k,
		"total_steps": schema.StepCount(),
		"title":       step.Title,
		"fields":      wizard.StepView(&slot, step),
	}
	if errCode := c.QueryParam("error"); errCode != "" {
		resp["error"] = errCode
	}
	return c.JSON(http.StatusOK, resp)
}

// SubmitStep merges one step submission into the session's slot. The final
// step additionally stores an optional consent document, persists the
// finalized record and clears the slot.
func SubmitStep(c echo.Context) error {
	log := logger.FromContext(c)

	schema, ok := schemas[c.Param("kind")]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown record kind"})
	}

	k, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		return c.Redirect(http.StatusFound, fmt.Sprintf("/%s/form/1", schema.Kind))
	}
	step, ok := schema.Step(k)
	if !ok {
		return c.Redirect(http.StatusFound, fmt.Sprintf("/%s/form/1", schema.Kind))
	}

	sessionID := c.Get("session_id").(string)
	userID := c.Get("user_id").(uint)
	prometheus.RecordWizardStep(schema.Kind, k)

	form, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form data"})
	}

	mergeErr := slots.Apply(sessionID, schema.Kind, func(slot *wizard.Slot) error {
		return wizard.MergeStep(slot, step, form)
	})
	if mergeErr != nil {
		var fieldErr *wizard.FieldError
		if errors.As(mergeErr, &fieldErr) {
			log.Info("Step submission rejected",
				zap.String("kind", schema.Kind),
				zap.Int("step", k),
				zap.String("field", fieldErr.Field))
			return c.Redirect(http.StatusFound,
				fmt.Sprintf("/%s/form/%d?error=invalid_%s", schema.Kind, k, fieldErr.Field))
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form data"})
	}

	if k < schema.StepCount() {
		return c.Redirect(http.StatusFound, fmt.Sprintf("/%s/form/%d", schema.Kind, k+1))
	}

	return finalize(c, schema, sessionID, userID)
}

// finalize turns the accumulated slot into a persisted record. The optional
// document is written to disk before the insert; a failed upload is logged
// and the record proceeds without a document reference.
func finalize(c echo.Context, schema *wizard.Schema, sessionID string, userID uint) error {
	log := logger.FromContext(c)

	var stored *struct{ storage, original string }
	if schema.FileField != "" {
		if fh, err := c.FormFile(schema.FileField); err == nil && fh != nil {
			saved, err := uploads.Save(fh)
			switch {
			case err != nil:
				log.Error("Failed to store upload", zap.String("filename", fh.Filename), zap.Error(err))
				prometheus.RecordUpload("error")
			case saved == nil:
				log.Info("Upload rejected", zap.String("filename", fh.Filename))
				prometheus.RecordUpload("rejected")
			default:
				prometheus.RecordUpload("stored")
				stored = &struct{ storage, original string }{saved.StorageName, saved.OriginalName}
			}
		}
	}

	slot, ok := slots.Peek(sessionID)
	if !ok {
		// Final submit without any prior steps still produces a record
		// from the submitted fields alone; Apply created the slot above.
		slot = wizard.Slot{Kind: schema.Kind, Values: map[string]string{}}
	}

	rec := wizard.BuildRecord(&slot, userID)
	if stored != nil {
		rec.DocumentName = stored.storage
		rec.DocumentOriginalName = stored.original
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	records := store.NewRecordStore(database.GetDB())
	recordID, err := records.Create(rec)
	if err != nil {
		log.Error("Failed to create record", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save record"})
	}

	slots.Clear(sessionID)
	prometheus.WizardSlotsGauge.Set(float64(slots.Len()))
	prometheus.RecordCreated(schema.Kind)

	log.Info("Record created",
		zap.String("kind", schema.Kind),
		zap.Uint("record_id", recordID),
		zap.Uint("user_id", userID),
		zap.Bool("document", stored != nil))

	return c.Redirect(http.StatusFound, "/dashboard")
}
