package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash must differ from plaintext")
	}
	if err := ComparePassword(hash, "secret1"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("hashes must be salted")
	}
}
