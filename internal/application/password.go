package application

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrInvalidPasswordHash reports a stored hash that is not an argon2id PHC string.
	ErrInvalidPasswordHash = errors.New("invalid password hash format")
	// ErrIncompatiblePasswordVersion reports an argon2 version this build cannot verify.
	ErrIncompatiblePasswordVersion = errors.New("incompatible password hash version")
)

// Argon2idParams tunes the cost of password hashing.
type Argon2idParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2idParams is the production cost profile.
var DefaultArgon2idParams = Argon2idParams{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// phcHash is a decoded "$argon2id$v=19$m=...,t=...,p=...$salt$key" string.
type phcHash struct {
	params Argon2idParams
	salt   []byte
	key    []byte
}

func (p phcHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.params.Memory, p.params.Iterations, p.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(p.salt),
		base64.RawStdEncoding.EncodeToString(p.key),
	)
}

func derive(password string, salt []byte, params Argon2idParams, keyLen uint32) []byte {
	return argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, keyLen)
}

func parsePHC(encoded string) (phcHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return phcHash{}, ErrInvalidPasswordHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return phcHash{}, fmt.Errorf("%w: version: %v", ErrInvalidPasswordHash, err)
	}
	if version != argon2.Version {
		return phcHash{}, ErrIncompatiblePasswordVersion
	}

	var decoded phcHash
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &decoded.params.Memory, &decoded.params.Iterations, &decoded.params.Parallelism); err != nil {
		return phcHash{}, fmt.Errorf("%w: params: %v", ErrInvalidPasswordHash, err)
	}
	if decoded.params.Memory == 0 || decoded.params.Iterations == 0 || decoded.params.Parallelism == 0 {
		return phcHash{}, fmt.Errorf("%w: zero cost parameter", ErrInvalidPasswordHash)
	}

	var err error
	if decoded.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return phcHash{}, fmt.Errorf("%w: salt: %v", ErrInvalidPasswordHash, err)
	}
	if decoded.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(decoded.key) == 0 {
		return phcHash{}, fmt.Errorf("%w: key", ErrInvalidPasswordHash)
	}
	return decoded, nil
}

// PasswordHasher hashes and verifies passwords with a fixed parameter set.
type PasswordHasher struct {
	params Argon2idParams

	decoyOnce sync.Once
	decoy     string
}

// NewPasswordHasher returns a hasher using params. Zero fields fall back to
// DefaultArgon2idParams.
func NewPasswordHasher(params Argon2idParams) *PasswordHasher {
	if params.Memory == 0 {
		params.Memory = DefaultArgon2idParams.Memory
	}
	if params.Iterations == 0 {
		params.Iterations = DefaultArgon2idParams.Iterations
	}
	if params.Parallelism == 0 {
		params.Parallelism = DefaultArgon2idParams.Parallelism
	}
	if params.SaltLength == 0 {
		params.SaltLength = DefaultArgon2idParams.SaltLength
	}
	if params.KeyLength == 0 {
		params.KeyLength = DefaultArgon2idParams.KeyLength
	}
	return &PasswordHasher{params: params}
}

// Hash encodes password as an argon2id PHC string with a fresh random salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}
	return phcHash{
		params: h.params,
		salt:   salt,
		key:    derive(password, salt, h.params, h.params.KeyLength),
	}.String(), nil
}

// Verify returns nil when password matches hashed. Mismatches and unreadable
// hashes both wrap ErrInvalidCredentials.
func (h *PasswordHasher) Verify(hashed, password string) error {
	stored, err := parsePHC(hashed)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	candidate := derive(password, stored.salt, stored.params, uint32(len(stored.key)))
	if subtle.ConstantTimeCompare(stored.key, candidate) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// VerifyDecoy spends the same work as Verify for logins naming an unknown
// account. It always fails.
func (h *PasswordHasher) VerifyDecoy(password string) error {
	h.decoyOnce.Do(func() {
		h.decoy, _ = h.Hash("decoy-password")
	})
	_ = h.Verify(h.decoy, password)
	return ErrInvalidCredentials
}
