package auth

import (
	"strings"
	"testing"
)

func TestHashPasswordAndVerify(t *testing.T) {
	password := "sl4mdunk!"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if hash == "" || hash == password {
		t.Fatalf("expected opaque hash, got %q", hash)
	}

	if !VerifyPassword(hash, password) {
		t.Fatal("expected password to verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("expected password mismatch to fail")
	}
}

func TestVerifyPasswordWithInvalidHash(t *testing.T) {
	if VerifyPassword("not-a-valid-hash", "password") {
		t.Fatal("expected invalid hash to fail verification")
	}
}

func TestValidatePassword(t *testing.T) {
	if reason := validatePassword("short"); reason == "" {
		t.Fatal("expected short password to be rejected")
	}
	if reason := validatePassword(strings.Repeat("a", 73)); reason == "" {
		t.Fatal("expected overlong password to be rejected")
	}
	if reason := validatePassword("long enough"); reason != "" {
		t.Fatalf("expected valid password, got %q", reason)
	}
}
