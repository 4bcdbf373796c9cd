package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "s3cret!" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !CheckPassword("s3cret!", hash) {
		t.Fatalf("expected stored hash to verify against its plaintext")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("same-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ")
	}
	if !CheckPassword("same-password", first) || !CheckPassword("same-password", second) {
		t.Fatalf("both hashes must verify against the plaintext")
	}
}

func TestHashPassword_CostOutOfRange(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw", 99)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost error: %v", err)
	}
	if cost != DefaultBcryptCost {
		t.Fatalf("expected fallback to default cost %d, got %d", DefaultBcryptCost, cost)
	}
}

func TestCheckPassword_Mismatch(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if CheckPassword("wrong", hash) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	// A corrupt stored hash means failed verification, never a panic.
	for _, hash := range []string{"", "plaintext", strings.Repeat("x", 60)} {
		if CheckPassword("anything", hash) {
			t.Fatalf("malformed hash %q must not verify", hash)
		}
	}
}
