package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordAndCheckPassword(t *testing.T) {
	hash, err := HashPasswordWithCost("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "" || hash == "s3cret" {
		t.Fatalf("expected opaque hash, got %q", hash)
	}
	if !CheckPassword("s3cret", hash) {
		t.Fatalf("expected password check to pass")
	}
	if CheckPassword("wrong", hash) {
		t.Fatalf("expected password check to fail")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := HashPasswordWithCost("same", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash a: %v", err)
	}
	b, err := HashPasswordWithCost("same", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash b: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct salted hashes")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestCheckPasswordEmptyStored(t *testing.T) {
	if CheckPassword("anything", "") {
		t.Fatalf("expected empty stored credential to never match")
	}
}

func TestHashPasswordRejectsOverlong(t *testing.T) {
	long := make([]byte, MaxPasswordBytes+1)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := HashPasswordWithCost(string(long), bcrypt.MinCost); err != ErrPasswordTooLong {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if _, err := HashPasswordWithCost(string(long[:MaxPasswordBytes]), bcrypt.MinCost); err != nil {
		t.Fatalf("hash at limit: %v", err)
	}
}
