package captcha

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"registry-service/pkg/config"
	"registry-service/prometheus"
)

// Client verifies CAPTCHA solutions against the external verification
// service. Verification is best-effort: transport errors, timeouts and
// malformed responses are fail-open, so an outage of the CAPTCHA provider
// degrades the check instead of blocking logins. Only an explicit
// {"success": false} rejects.
type Client struct {
	verifyURL  string
	secret     string
	httpClient *http.Client
	log        *zap.Logger
}

type verifyResponse struct {
	Success bool `json:"success"`
}

// New creates a CAPTCHA client from configuration
func New(cfg *config.CaptchaConfig, log *zap.Logger) *Client {
	return &Client{
		verifyURL:  cfg.VerifyURL,
		secret:     cfg.Secret,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

// Verify checks one CAPTCHA solution. A disabled client (no secret
// configured) accepts everything.
func (c *Client) Verify(solution string) bool {
	if c.secret == "" {
		return true
	}

	data := url.Values{}
	data.Set("solution", solution)
	data.Set("secret", c.secret)

	resp, err := c.httpClient.Post(c.verifyURL, "application/x-www-form-urlencoded", strings.NewReader(data.Encode()))
	if err != nil {
		c.log.Warn("CAPTCHA verification unreachable, failing open", zap.Error(err))
		prometheus.RecordCaptchaResult("error")
		return true
	}
	defer resp.Body.Close()

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.log.Warn("CAPTCHA verification returned malformed response, failing open", zap.Error(err))
		prometheus.RecordCaptchaResult("error")
		return true
	}

	if result.Success {
		prometheus.RecordCaptchaResult("success")
		return true
	}

	prometheus.RecordCaptchaResult("failure")
	return false
}
