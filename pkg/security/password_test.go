package security_test

import (
	"testing"

	"github.com/madhavavarma/storeadminnom/pkg/security"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("very-secure-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword returned empty string")
	}

	ok, err := security.VerifyPassword("very-secure-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("VerifyPassword failed for the correct password")
	}

	ok, err = security.VerifyPassword("bogus-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for invalid password: %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if _, err := security.VerifyPassword("irrelevant", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestValidateHash(t *testing.T) {
	hash, err := security.HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if err := security.ValidateHash(hash); err != nil {
		t.Fatalf("ValidateHash rejected a fresh hash: %v", err)
	}
	if err := security.ValidateHash("$2a$10$bcrypt-style-hash"); err == nil {
		t.Fatal("expected error for non-argon2id hash")
	}
}
