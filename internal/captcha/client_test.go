package captcha

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"registry-service/pkg/config"
)

func newClient(verifyURL, secret string, timeout time.Duration) *Client {
	return New(&config.CaptchaConfig{
		Secret:    secret,
		VerifyURL: verifyURL,
		Timeout:   timeout,
	}, zap.NewNop())
}

func TestVerify_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "the-solution", r.PostFormValue("solution"))
		require.Equal(t, "the-secret", r.PostFormValue("secret"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	c := newClient(srv.URL, "the-secret", time.Second)
	require.True(t, c.Verify("the-solution"))
}

func TestVerify_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false}`))
	}))
	defer srv.Close()

	c := newClient(srv.URL, "the-secret", time.Second)
	require.False(t, c.Verify("wrong"))
}

func TestVerify_FailsOpenOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newClient(srv.URL, "the-secret", time.Second)
	require.True(t, c.Verify("anything"))
}

func TestVerify_FailsOpenOnMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	c := newClient(srv.URL, "the-secret", time.Second)
	require.True(t, c.Verify("anything"))
}

func TestVerify_FailsOpenOnTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		srv.Close()
	}()

	c := newClient(srv.URL, "the-secret", 50*time.Millisecond)
	start := time.Now()
	require.True(t, c.Verify("anything"))
	require.Less(t, time.Since(start), time.Second)
}

func TestVerify_DisabledWithoutSecret(t *testing.T) {
	c := newClient("http://127.0.0.1:0", "", time.Second)
	require.True(t, c.Verify("anything"))
}
