package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"registry-service/pkg/config"
)

func TestSessionRoundTrip(t *testing.T) {
	Initialize(&config.SessionConfig{SigningKey: "test-key", TTLHours: 1})

	token, sessionID, err := New(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, sessionID)

	claims, err := Validate(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "admin", claims.Username)
	require.Equal(t, sessionID, claims.SessionID)
}

func TestSessionIDsDiffer(t *testing.T) {
	Initialize(&config.SessionConfig{SigningKey: "test-key", TTLHours: 1})

	_, first, err := New(1, "a")
	require.NoError(t, err)
	_, second, err := New(1, "a")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestValidate_RejectsTamperedToken(t *testing.T) {
	Initialize(&config.SessionConfig{SigningKey: "test-key", TTLHours: 1})
	token, _, err := New(1, "a")
	require.NoError(t, err)

	_, err = Validate(token + "x")
	require.Error(t, err)

	_, err = Validate("not-a-token")
	require.Error(t, err)
}

func TestValidate_RejectsForeignKey(t *testing.T) {
	Initialize(&config.SessionConfig{SigningKey: "key-one", TTLHours: 1})
	token, _, err := New(1, "a")
	require.NoError(t, err)

	Initialize(&config.SessionConfig{SigningKey: "key-two", TTLHours: 1})
	_, err = Validate(token)
	require.Error(t, err)
}

func TestTTLDefaultsWhenUnset(t *testing.T) {
	Initialize(&config.SessionConfig{SigningKey: "k"})
	require.Equal(t, 12*time.Hour, TTL())
}
