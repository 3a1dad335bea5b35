package security

import (
	"strings"
	"testing"
)

func TestHashAndCheck(t *testing.T) {
	hasher := NewHasher(4) // min cost keeps the test fast
	password := "qwerty123"

	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "" || hash == password {
		t.Fatalf("Hash() returned %q", hash)
	}

	if !hasher.Check(password, hash) {
		t.Error("Check() = false for correct password")
	}
	if hasher.Check("wrong-password", hash) {
		t.Error("Check() = true for wrong password")
	}
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewHasher(4)

	first, err := hasher.Hash("qwerty123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("qwerty123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

func TestInvalidCostFallsBack(t *testing.T) {
	hasher := NewHasher(99)
	if _, err := hasher.Hash("qwerty123"); err != nil {
		t.Fatalf("Hash() with out-of-range cost error = %v", err)
	}
}

func TestGenerateSessionID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := GenerateSessionID()
		if len(id) != 36 || strings.Count(id, "-") != 4 {
			t.Fatalf("GenerateSessionID() = %q, want UUID format", id)
		}
		if seen[id] {
			t.Fatalf("duplicate session id generated: %s", id)
		}
		seen[id] = true
	}
}
