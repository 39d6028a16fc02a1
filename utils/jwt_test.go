package utils

import (
	"testing"
	"time"

	"github.com/hoshifest/backend/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret"})

	token, err := GenerateToken(42, "rin", "rin@example.com", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "rin" || claims.Email != "rin@example.com" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret"})

	token, err := GenerateToken(42, "rin", "rin@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if _, err := ParseToken(token); err == nil {
		t.Fatal("expired token should be rejected")
	}
}

func TestTamperedTokenIsRejected(t *testing.T) {
	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret"})

	token, err := GenerateToken(42, "rin", "rin@example.com", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	config.SetForTesting(config.AppConfig{JWTSecret: "another-secret"})
	if _, err := ParseToken(token); err == nil {
		t.Fatal("token signed with a different secret should be rejected")
	}
}
