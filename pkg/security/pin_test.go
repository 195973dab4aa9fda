package security

import (
	"errors"
	"strings"
	"testing"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	for _, pin := range []string{"1234", "000000", "s3cret pin", ""} {
		encoded, err := HashPIN(pin)
		if err != nil {
			t.Fatalf("HashPIN(%q) failed: %v", pin, err)
		}

		match, err := VerifyPIN(pin, encoded)
		if err != nil {
			t.Fatalf("VerifyPIN(%q) errored: %v", pin, err)
		}
		if !match {
			t.Errorf("VerifyPIN(%q, HashPIN(%q)) = false, want true", pin, pin)
		}
	}
}

func TestVerifyWrongPIN(t *testing.T) {
	encoded, err := HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN failed: %v", err)
	}

	// A mismatch is a clean false, not an error.
	match, err := VerifyPIN("4321", encoded)
	if err != nil {
		t.Fatalf("VerifyPIN with wrong pin errored: %v", err)
	}
	if match {
		t.Error("VerifyPIN matched a wrong pin")
	}
}

func TestHashIsSaltedPerCall(t *testing.T) {
	first, err := HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN failed: %v", err)
	}
	second, err := HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN failed: %v", err)
	}

	if first == second {
		t.Error("Two hashes of the same pin are identical; salt is not fresh per call")
	}

	// Both still verify.
	for _, encoded := range []string{first, second} {
		match, err := VerifyPIN("1234", encoded)
		if err != nil || !match {
			t.Errorf("VerifyPIN failed for independently salted hash: match=%t err=%v", match, err)
		}
	}
}

func TestHashEncodingShape(t *testing.T) {
	encoded, err := HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN failed: %v", err)
	}

	if !strings.HasPrefix(encoded, "$argon2id$v=") {
		t.Errorf("Unexpected hash prefix: %s", encoded)
	}
	if parts := strings.Split(encoded, "$"); len(parts) != 6 {
		t.Errorf("Expected 6 '$'-separated segments, got %d in %s", len(parts), encoded)
	}
}

func TestVerifyMalformedHashIsError(t *testing.T) {
	malformed := []string{
		"not-a-valid-hash",
		"",
		"$argon2id$v=19$m=65536,t=1,p=4$onlyfivesegments",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$ZGlnZXN0",
		"$argon2id$version=19$m=65536,t=1,p=4$c2FsdA$ZGlnZXN0",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=sixtyfour,t=1,p=4$c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$ZGlnZXN0",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!",
	}

	for _, encoded := range malformed {
		match, err := VerifyPIN("1234", encoded)
		if err == nil {
			t.Errorf("VerifyPIN(%q) returned no error, want ErrInvalidHash", encoded)
			continue
		}
		if !errors.Is(err, ErrInvalidHash) {
			t.Errorf("VerifyPIN(%q) error %v does not wrap ErrInvalidHash", encoded, err)
		}
		if match {
			t.Errorf("VerifyPIN(%q) reported a match on malformed input", encoded)
		}
	}
}
