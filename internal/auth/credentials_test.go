package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/content-publishing-api/internal/apperrors"
	"github.com/content-publishing-api/internal/auth"
	"github.com/content-publishing-api/internal/config"
)

func testCredentials() *auth.Credentials {
	return auth.NewCredentials(&config.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: 4,
	})
}

func TestPasswordHashAndVerify(t *testing.T) {
	creds := testCredentials()

	hash, err := creds.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("Hash must not equal the plaintext")
	}

	if !creds.VerifyPassword("hunter22", hash) {
		t.Error("Correct password must verify")
	}
	if creds.VerifyPassword("wrong", hash) {
		t.Error("Wrong password must not verify")
	}
	if creds.VerifyPassword("hunter22", "not-a-hash") {
		t.Error("Garbage hash must not verify")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	creds := testCredentials()

	token, err := creds.IssueToken("user-123")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	userID, err := creds.ResolveToken(token)
	if err != nil {
		t.Fatalf("ResolveToken failed: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("Expected user-123, got %s", userID)
	}
}

func TestResolveToken_Failures(t *testing.T) {
	creds := testCredentials()

	expiredCreds := auth.NewCredentials(&config.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   -time.Hour,
		BcryptCost: 4,
	})
	expired, err := expiredCreds.IssueToken("user-123")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	otherKey := auth.NewCredentials(&config.AuthConfig{
		JWTSecret:  "different-secret",
		TokenTTL:   time.Hour,
		BcryptCost: 4,
	})
	misSigned, err := otherKey.IssueToken("user-123")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not.a.jwt"},
		{"expired token", expired},
		{"mismatched signing key", misSigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := creds.ResolveToken(tt.token)
			// All failure modes collapse to the same error
			if !errors.Is(err, apperrors.ErrUnauthenticated) {
				t.Errorf("Expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}
