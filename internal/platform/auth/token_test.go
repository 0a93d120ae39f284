package auth

import (
	"testing"
	"time"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSigningKey, time.Hour)

	tokenStr, err := issuer.Issue("user-1", RolePsychologist, "Dr. Ayşe Yılmaz")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	claims, err := issuer.Parse(tokenStr)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if claims.Subject != "user-1" {
		t.Errorf("expected subject user-1, got %s", claims.Subject)
	}
	if claims.Role != RolePsychologist {
		t.Errorf("expected role psychologist, got %s", claims.Role)
	}
	if claims.Name != "Dr. Ayşe Yılmaz" {
		t.Errorf("expected name preserved, got %s", claims.Name)
	}
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer(testSigningKey, -time.Minute)

	tokenStr, err := issuer.Issue("user-1", RoleAssistant, "x")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := issuer.Parse(tokenStr); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestTokenIssuer_RejectsWrongKey(t *testing.T) {
	issuer := NewTokenIssuer(testSigningKey, time.Hour)
	other := NewTokenIssuer([]byte("another-secret-key"), time.Hour)

	tokenStr, err := issuer.Issue("user-1", RoleAdmin, "x")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := other.Parse(tokenStr); err == nil {
		t.Error("expected error for token signed with different key")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("gizli-sifre-123")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hash == "gizli-sifre-123" {
		t.Fatal("hash must not equal plaintext")
	}

	if !CheckPassword(hash, "gizli-sifre-123") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "yanlis-sifre") {
		t.Error("expected wrong password to fail")
	}
}
