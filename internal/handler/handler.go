package handler

import (
	"registry-service/internal/captcha"
	"registry-service/internal/upload"
	"registry-service/internal/wizard"
	"registry-service/pkg/config"
	"registry-service/pkg/logger"
)

var (
	cfg           *config.Config
	captchaClient *captcha.Client
	uploads       *upload.Store
	slots         *wizard.Store
	schemas       map[string]*wizard.Schema
)

// Init wires the handler package's collaborators from configuration. Must be
// called after the logger and database are initialized.
func Init(c *config.Config) error {
	cfg = c
	captchaClient = captcha.New(&c.Captcha, logger.GetLogger())

	var err error
	uploads, err = upload.New(c.Upload.Dir, "pdf")
	if err != nil {
		return err
	}

	slots = wizard.NewStore(c.Wizard.SlotTTL)
	schemas = wizard.Schemas()
	return nil
}
