package security

import (
	"strings"
	"testing"
	"time"

	"propmatch/internal/common"
)

func TestJWTRoundTrip(t *testing.T) {
	provider := NewJWTProvider("secret")
	userID := common.NewUUID()

	token, expiresAt, err := provider.Generate(userID, "company", time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if expiresAt.Before(time.Now().UTC()) {
		t.Fatal("expected expiry in the future")
	}

	claims, err := provider.Parse(token)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if claims.UserID != string(userID) {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "company" {
		t.Fatalf("expected role company, got %s", claims.Role)
	}
}

func TestJWTParse_RejectsTamperedToken(t *testing.T) {
	provider := NewJWTProvider("secret")
	token, _, err := provider.Generate(common.NewUUID(), "student", time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + "forged"

	if _, err := provider.Parse(tampered); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestJWTParse_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTProvider("secret").Generate(common.NewUUID(), "student", time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if _, err := NewJWTProvider("other").Parse(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestJWTParse_RejectsExpiredToken(t *testing.T) {
	provider := NewJWTProvider("secret")
	token, _, err := provider.Generate(common.NewUUID(), "student", -time.Minute)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if _, err := provider.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
