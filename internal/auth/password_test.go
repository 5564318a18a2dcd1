package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("correct1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hashed, "$2") {
		t.Errorf("digest does not look like bcrypt: %q", hashed)
	}

	// each call salts independently
	hashed2, err := HashPassword("correct1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == hashed2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestComparePassword(t *testing.T) {
	hashed, err := HashPassword("correct1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if err := ComparePassword(hashed, "correct1"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := ComparePassword(hashed, "wrongpass"); err == nil {
		t.Error("wrong password accepted")
	}
	if err := ComparePassword("", "correct1"); err == nil {
		t.Error("empty digest accepted")
	}
}
