package password

import "fmt"

// Algorithm names the supported hashing algorithms.
type Algorithm string

const (
	AlgorithmArgon2id Algorithm = "argon2id"
	AlgorithmBcrypt   Algorithm = "bcrypt"
)

// Config selects and parameterizes the hasher.
type Config struct {
	Algorithm Algorithm

	// bcrypt only
	BcryptCost int

	// argon2id only
	Argon2Time    uint32
	Argon2Memory  uint32
	Argon2Threads uint8
}

// NewHasher builds a Hasher from configuration. An empty algorithm defaults
// to argon2id; an unknown one is a configuration error.
func NewHasher(cfg Config) (Hasher, error) {
	switch cfg.Algorithm {
	case AlgorithmArgon2id, "":
		return NewArgon2Hasher(cfg.Argon2Time, cfg.Argon2Memory, cfg.Argon2Threads), nil
	case AlgorithmBcrypt:
		return NewBcryptHasher(cfg.BcryptCost), nil
	default:
		return nil, fmt.Errorf("password: unsupported algorithm %q", cfg.Algorithm)
	}
}
