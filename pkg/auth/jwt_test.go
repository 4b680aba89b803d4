package auth

import (
	"testing"
	"time"
)

func TestGuestTokenRoundTrip(t *testing.T) {
	token, err := GenerateGuestToken("test-secret", "session-123", time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	claims, err := ValidateGuestToken("test-secret", token)
	if err != nil {
		t.Fatalf("token validation failed: %v", err)
	}
	if claims.SessionID != "session-123" {
		t.Fatalf("expected session-123, got %q", claims.SessionID)
	}
}

func TestValidateGuestTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateGuestToken("test-secret", "session-123", time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	if _, err := ValidateGuestToken("other-secret", token); err == nil {
		t.Fatal("expected validation failure with wrong secret")
	}
}

func TestValidateGuestTokenRejectsExpired(t *testing.T) {
	token, err := GenerateGuestToken("test-secret", "session-123", -time.Minute)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	if _, err := ValidateGuestToken("test-secret", token); err == nil {
		t.Fatal("expected validation failure for expired token")
	}
}

func TestValidateGuestTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateGuestToken("test-secret", "not.a.token"); err == nil {
		t.Fatal("expected validation failure for malformed token")
	}
}
