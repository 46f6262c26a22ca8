package utils

import (
	"testing"
	"time"

	"docassist/config"
)

func init() {
	config.AppConfig.JWTSecret = "test-secret"
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "jo@example.com", "user", time.Minute)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	claims, err := TokenClaims(token, TokenTypeAccess)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims["sub"] != "user-1" || claims["email"] != "jo@example.com" || claims["role"] != "user" {
		t.Fatalf("unexpected claims %v", claims)
	}

	id, err := ExtractIDFromToken(token)
	if err != nil || id != "user-1" {
		t.Fatalf("ExtractIDFromToken = %q, %v", id, err)
	}
}

func TestTokenTypesDoNotCross(t *testing.T) {
	access, err := GenerateToken("user-1", "jo@example.com", "user", time.Minute)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	reset, err := GenerateResetToken("user-1", time.Minute)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := TokenClaims(access, TokenTypeReset); err == nil {
		t.Fatal("access token accepted as reset token")
	}
	if _, err := TokenClaims(reset, TokenTypeAccess); err == nil {
		t.Fatal("reset token accepted as access token")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "jo@example.com", "user", -time.Minute)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := TokenClaims(token, TokenTypeAccess); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "jo@example.com", "user", time.Minute)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := TokenClaims(tampered, TokenTypeAccess); err == nil {
		t.Fatal("tampered token accepted")
	}
}
