package security

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret-key-that-is-long-enough-123", time.Hour)

	token, err := svc.GenerateToken("42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	sub, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if sub != "42" {
		t.Errorf("subject = %q, want %q", sub, "42")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService("secret-one-that-is-long-enough-for-hs256", time.Hour)
	verifier := NewAuthService("secret-two-that-is-long-enough-for-hs256", time.Hour)

	token, err := issuer.GenerateToken("42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewAuthService("test-secret-key-that-is-long-enough-123", -time.Minute)

	token, err := svc.GenerateToken("42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail for an expired token")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret-key-that-is-long-enough-123", time.Hour)

	hash, err := svc.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := svc.CompareHashAndPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := svc.CompareHashAndPassword(hash, "wrong password"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestGenerateSecureTokenIsUnique(t *testing.T) {
	a, err := GenerateSecureToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateSecureToken()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two secure tokens should not collide")
	}
}
