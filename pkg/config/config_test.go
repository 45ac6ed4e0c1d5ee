package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Empty(t, cfg.DB.URL)
	require.Equal(t, "registry.db", cfg.DB.SQLitePath)
	require.Equal(t, 5*time.Second, cfg.Captcha.Timeout)
	require.Equal(t, "uploads", cfg.Upload.Dir)
	require.Equal(t, "16M", cfg.Upload.MaxSize)
	require.Equal(t, 30*time.Minute, cfg.Wizard.SlotTTL)
	require.Equal(t, "admin", cfg.Bootstrap.Username)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DATABASE_URL", "host=db port=5432 user=u password=p dbname=registry")
	t.Setenv("WIZARD_SLOT_TTL", "5m")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("CAPTCHA_TIMEOUT", "1s")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9999", cfg.Server.Port)
	require.NotEmpty(t, cfg.DB.URL)
	require.Equal(t, 5*time.Minute, cfg.Wizard.SlotTTL)
	require.Equal(t, 2, cfg.Session.TTLHours)
	require.Equal(t, time.Second, cfg.Captcha.Timeout)
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "twelve")
	t.Setenv("WIZARD_SLOT_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 12, cfg.Session.TTLHours)
	require.Equal(t, 30*time.Minute, cfg.Wizard.SlotTTL)
}
