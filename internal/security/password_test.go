package security_test

import (
	"testing"

	"github.com/dkrasnove/bloghub/internal/security"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hasher := security.NewHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse battery staple")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !hasher.Verify("correct horse battery staple", hash) {
		t.Fatal("expected the original password to verify")
	}

	if hasher.Verify("wrong password", hash) {
		t.Fatal("expected a wrong password to fail verification")
	}
}

func TestVerifyGarbageHash(t *testing.T) {
	hasher := security.NewHasher(bcrypt.MinCost)

	// a mangled hash is a mismatch, not a panic or error
	if hasher.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatal("garbage hash should never verify")
	}
}

func TestHashesAreSalted(t *testing.T) {
	hasher := security.NewHasher(bcrypt.MinCost)

	h1, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	h2, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if h1 == h2 {
		t.Fatal("two hashes of the same password should differ")
	}
}

func TestOutOfRangeCostFallsBack(t *testing.T) {
	hasher := security.NewHasher(999)

	hash, err := hasher.Hash("p@ssw0rd-123")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if !hasher.Verify("p@ssw0rd-123", hash) {
		t.Fatal("expected verification to succeed at fallback cost")
	}
}
