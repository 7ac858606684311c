package crypto

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"errors"
	"fmt"
	"hash"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	Argon2Memory  = 64 * 1024 // Argon2id memory in KiB
	Argon2Threads = 2         // Argon2id parallelism
	Argon2MaxTime = 16        // Upper bound for the Argon2id time cost

	MaxIterations = 1 << 24 // Upper bound for PBKDF2 iterations
	MaxKeyLength  = 1 << 20 // Upper bound for derived key length in bytes
)

var (
	ErrInvalidParams    = errors.New("invalid key derivation parameters")
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")
)

// KDF handles key derivation from passwords
type KDF struct {
	Salt       []byte
	Iterations int
	KeyLength  int
	// Hash is the PBKDF2 PRF. Nil means HMAC-SHA1.
	Hash func() hash.Hash
}

// NewKDF creates a KDF after checking the numeric parameters
func NewKDF(salt []byte, iterations, keyLength int) (*KDF, error) {
	if iterations < 1 || iterations > MaxIterations {
		return nil, fmt.Errorf("%w: iterations must be in [1, %d], got %d", ErrInvalidParams, MaxIterations, iterations)
	}
	if keyLength < 1 || keyLength > MaxKeyLength {
		return nil, fmt.Errorf("%w: key length must be in [1, %d], got %d", ErrInvalidParams, MaxKeyLength, keyLength)
	}

	return &KDF{
		Salt:       salt,
		Iterations: iterations,
		KeyLength:  keyLength,
	}, nil
}

// DeriveKey derives a key of KeyLength bytes from a password with PBKDF2
func (k *KDF) DeriveKey(password []byte) []byte {
	prf := k.Hash
	if prf == nil {
		prf = sha1.New
	}
	return pbkdf2.Key(password, k.Salt, k.Iterations, k.KeyLength, prf)
}

// CheckArgon2id reports whether Iterations is usable as an Argon2id time cost.
// Each pass touches Argon2Memory, so the cost is capped at Argon2MaxTime.
func (k *KDF) CheckArgon2id() error {
	if k.Iterations > Argon2MaxTime {
		return fmt.Errorf("%w: argon2id time cost must be in [1, %d], got %d", ErrInvalidParams, Argon2MaxTime, k.Iterations)
	}
	return nil
}

// DeriveArgon2id derives a key with Argon2id, using Iterations as the time cost.
// Call CheckArgon2id first.
func (k *KDF) DeriveArgon2id(password []byte) []byte {
	return argon2.IDKey(password, k.Salt, uint32(k.Iterations), Argon2Memory, Argon2Threads, uint32(k.KeyLength))
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// GenerateRandom generates n random bytes
func GenerateRandom(n int) ([]byte, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: random length must be positive, got %d", ErrInvalidParams, n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}
