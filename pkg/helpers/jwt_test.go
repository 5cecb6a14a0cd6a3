package helpers

import (
	"testing"
	"time"
)

func newTestJWT() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestJWTRoundtrip(t *testing.T) {
	m := newTestJWT()
	token, exp, err := m.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Errorf("expiry in the past: %v", exp)
	}
	claims, err := m.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want user-123", claims.UserID)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	m := newTestJWT()
	token, _, err := m.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := NewJWTManager("different-secret", "refresh-secret", time.Hour, 24*time.Hour)
	if _, err := other.ParseAccessToken(token); err == nil {
		t.Error("token signed with another secret should not verify")
	}
	// Access tokens never verify against the refresh secret.
	if _, err := m.ParseRefreshToken(token); err == nil {
		t.Error("access token should not verify as refresh token")
	}
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)
	token, _, err := m.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ParseAccessToken(token); err == nil {
		t.Error("expired token should not verify")
	}
}

func TestJWTMissingUserID(t *testing.T) {
	m := newTestJWT()
	token, _, err := m.GenerateAccessToken("")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ParseAccessToken(token); err == nil {
		t.Error("token without a user id should be rejected")
	}
}
