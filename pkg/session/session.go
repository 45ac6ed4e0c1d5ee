package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"registry-service/pkg/config"
)

// CookieName is the session cookie set on successful login
const CookieName = "registry_session"

var (
	signingKey []byte
	ttl        time.Duration
)

// Claims represents the signed session carried in the cookie. SessionID keys
// the server-side wizard slot store.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Initialize configures the session signing key and lifetime
func Initialize(cfg *config.SessionConfig) {
	signingKey = []byte(cfg.SigningKey)
	ttl = time.Duration(cfg.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
}

// New creates a signed session token for the given user with a fresh
// session id
func New(userID uint, username string) (token string, sessionID string, err error) {
	sessionID = uuid.New().String()
	claims := Claims{
		UserID:    userID,
		Username:  username,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(signingKey)
	return token, sessionID, err
}

// Validate parses and verifies a session token
func Validate(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := parsed.Claims.(*Claims); ok && parsed.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// TTL returns the configured session lifetime
func TTL() time.Duration {
	return ttl
}
