package auth

import (
	"time"

	"github.com/content-publishing-api/internal/apperrors"
	"github.com/content-publishing-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Credentials verifies passwords and issues/resolves session tokens. The
// signing secret and TTL are injected once at construction from startup
// config; nothing here reads ambient state.
type Credentials struct {
	secret []byte
	ttl    time.Duration
	cost   int
}

// NewCredentials creates a credential service from auth configuration
func NewCredentials(cfg *config.AuthConfig) *Credentials {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		cost:   cost,
	}
}

// HashPassword hashes a plaintext password with bcrypt
func (c *Credentials) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored hash.
// A mismatch returns false, never an error.
func (c *Credentials) VerifyPassword(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}

// IssueToken signs a session token carrying the user identity claim
func (c *Credentials) IssueToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(c.ttl).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// ResolveToken validates a session token and extracts the user identity.
// Missing, malformed, expired and mis-signed tokens all resolve to the
// same ErrUnauthenticated so callers cannot distinguish the failure mode.
func (c *Credentials) ResolveToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", apperrors.ErrUnauthenticated
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthenticated
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperrors.ErrUnauthenticated
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", apperrors.ErrUnauthenticated
	}

	return userID, nil
}
