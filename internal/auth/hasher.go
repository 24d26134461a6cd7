// Package auth provides credential hashing and session token primitives.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (OWASP recommended minimum).
const (
	hashTime    = 3
	hashMemory  = 64 * 1024 // 64 MB
	hashThreads = 4
	hashKeyLen  = 32
	hashSaltLen = 16
)

var (
	// ErrInvalidHash indicates the stored digest is malformed.
	ErrInvalidHash = errors.New("invalid hash format")
	// ErrIncompatibleVersion indicates the digest was produced by an
	// unsupported argon2 version.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// HashPassword creates an argon2id digest of the given password with a
// fresh random salt. The same password yields a different digest on
// every call. Returns the digest in PHC string format:
// $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
func HashPassword(password string) (string, error) {
	salt := make([]byte, hashSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, hashTime, hashMemory, hashThreads, hashKeyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		hashMemory,
		hashTime,
		hashThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// VerifyPassword checks the password against a PHC-encoded digest using
// the salt and parameters embedded in it. A mismatch is a normal
// (false, nil) result; only a malformed digest yields an error.
// Comparison is constant time.
func VerifyPassword(password, encoded string) (bool, error) {
	salt, expected, params, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(expected)))

	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

type hashParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

// decodeHash parses a PHC argon2id string into salt, digest and parameters.
func decodeHash(encoded string) ([]byte, []byte, hashParams, error) {
	var params hashParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return nil, nil, params, ErrInvalidHash
	}
	if parts[1] != "argon2id" {
		return nil, nil, params, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, params, ErrInvalidHash
	}
	if version != argon2.Version {
		return nil, nil, params, ErrIncompatibleVersion
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return nil, nil, params, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, params, ErrInvalidHash
	}

	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, params, ErrInvalidHash
	}

	return salt, digest, params, nil
}
