// Package password provides one-way password hashing and verification.
//
// Two implementations of Hasher are available, selected by configuration:
//   - Argon2Hasher: argon2id with a versioned, self-describing hash format
//   - BcryptHasher: bcrypt for compatibility with existing hashes
//
// Both formats embed their cost parameters, so verification keeps working
// against hashes produced under older settings; Verify reports
// VerifySuccessRehashNeeded when a stored hash lags the configured cost.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// VerifyResult is the outcome of a password verification.
type VerifyResult int

const (
	// VerifyFailed means the password does not match the hash.
	VerifyFailed VerifyResult = iota
	// VerifySuccess means the password matches.
	VerifySuccess
	// VerifySuccessRehashNeeded means the password matches but the hash was
	// produced under weaker parameters than currently configured.
	VerifySuccessRehashNeeded
)

// ErrMalformedHash is returned when a stored hash cannot be parsed. It is a
// data problem, not a wrong password.
var ErrMalformedHash = errors.New("password: malformed hash")

// Hasher hashes and verifies passwords. Implementations never log, store, or
// return the plaintext.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) (VerifyResult, error)
}

// --- argon2id ---

const (
	argon2SaltLen = 16
	argon2KeyLen  = 32
)

// Argon2Hasher implements Hasher using argon2id.
type Argon2Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
}

// NewArgon2Hasher creates an argon2id hasher. Zero values fall back to the
// defaults (t=1, m=64MiB, p=4).
func NewArgon2Hasher(time, memory uint32, threads uint8) *Argon2Hasher {
	h := &Argon2Hasher{time: time, memory: memory, threads: threads}
	if h.time == 0 {
		h.time = 1
	}
	if h.memory == 0 {
		h.memory = 64 * 1024
	}
	if h.threads == 0 {
		h.threads = 4
	}
	return h
}

func (h *Argon2Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.time, h.memory, h.threads, argon2KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *Argon2Hasher) Verify(hash, plaintext string) (VerifyResult, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return VerifyFailed, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return VerifyFailed, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return VerifyFailed, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return VerifyFailed, fmt.Errorf("%w: decode salt: %v", ErrMalformedHash, err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return VerifyFailed, fmt.Errorf("%w: decode key: %v", ErrMalformedHash, err)
	}

	// Recompute under the parameters the hash was created with, so hashes
	// from older configurations stay verifiable.
	key := argon2.IDKey([]byte(plaintext), salt, time, memory, threads, uint32(len(expected)))
	if subtle.ConstantTimeCompare(key, expected) != 1 {
		return VerifyFailed, nil
	}

	if version < argon2.Version || time < h.time || memory < h.memory || threads < h.threads {
		return VerifySuccessRehashNeeded, nil
	}
	return VerifySuccess, nil
}

// --- bcrypt ---

// BcryptHasher implements Hasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher. Costs outside the valid range
// fall back to 12.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 12
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: bcrypt hash: %w", err)
	}
	return string(out), nil
}

func (h *BcryptHasher) Verify(hash, plaintext string) (VerifyResult, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return VerifyFailed, nil
	default:
		return VerifyFailed, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return VerifyFailed, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if cost < h.cost {
		return VerifySuccessRehashNeeded, nil
	}
	return VerifySuccess, nil
}
