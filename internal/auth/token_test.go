package auth

import (
	"strings"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue(42, "ana@colibri.edu", "administrador")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}

	if claims.ID != 42 {
		t.Errorf("claims.ID = %d, want 42", claims.ID)
	}
	if claims.Email != "ana@colibri.edu" {
		t.Errorf("claims.Email = %q", claims.Email)
	}
	if claims.Rol != "administrador" {
		t.Errorf("claims.Rol = %q", claims.Rol)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(1, "x@y.z", "estudiante")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Error("expected verification to fail with the wrong secret")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Issue(1, "x@y.z", "estudiante")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := tm.Verify(token); err == nil {
		t.Error("expected verification to fail for an expired token")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", strings.Repeat("a.", 10)} {
		if _, err := tm.Verify(token); err == nil {
			t.Errorf("expected verification to fail for %q", token)
		}
	}
}
