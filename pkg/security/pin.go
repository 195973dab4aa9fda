// Package security hashes and verifies the short PIN gating access to the
// journal. The PIN itself is never persisted by this layer; callers store
// only the encoded hash this package produces.
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Deliberately on the light side for an interactive
// PIN prompt: one pass over 64 MiB with four lanes.
const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	saltLen             = 16
)

// ErrInvalidHash marks an encoded hash that could not be parsed. Distinct
// from a clean verification mismatch, which is (false, nil).
var ErrInvalidHash = errors.New("invalid pin hash")

// HashPIN derives an argon2id hash of the PIN under a fresh random salt and
// returns it in the self-describing PHC encoding:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<base64 salt>$<base64 digest>
func HashPIN(pin string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(pin), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
	return encoded, nil
}

// VerifyPIN recomputes the hash of pin under the salt and parameters embedded
// in encoded and reports whether it matches. A wrong PIN is (false, nil); an
// encoded string that does not parse is an error wrapping ErrInvalidHash.
func VerifyPIN(pin, encoded string) (bool, error) {
	salt, digest, time, memory, threads, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(pin), salt, time, memory, threads, uint32(len(digest)))
	return subtle.ConstantTimeCompare(candidate, digest) == 1, nil
}

// decodeHash parses the PHC-encoded form produced by HashPIN.
func decodeHash(encoded string) (salt, digest []byte, time, memory uint32, threads uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: expected 6 '$'-separated segments", ErrInvalidHash)
	}
	if parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: malformed version segment", ErrInvalidHash)
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: incompatible argon2 version %d", ErrInvalidHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: malformed parameter segment", ErrInvalidHash)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: malformed salt: %v", ErrInvalidHash, err)
	}
	digest, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: malformed digest: %v", ErrInvalidHash, err)
	}

	return salt, digest, time, memory, threads, nil
}
