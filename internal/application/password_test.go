package application

import (
	"errors"
	"strings"
	"testing"
)

var cheapParams = Argon2idParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(cheapParams)
	hash, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Fatalf("unexpected hash encoding %q", hash)
	}
	if strings.Contains(hash, "s3cret") {
		t.Fatalf("hash leaks the password")
	}

	if err := hasher.Verify(hash, "s3cret"); err != nil {
		t.Fatalf("expected password to verify, got %v", err)
	}
	if err := hasher.Verify(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestPasswordHasher_SaltsEveryHash(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(cheapParams)
	first, _ := hasher.Hash("same")
	second, _ := hasher.Hash("same")
	if first == second {
		t.Fatalf("expected distinct hashes for the same password")
	}
}

func TestPasswordHasher_RejectsMalformedHashes(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(cheapParams)
	for _, hashed := range []string{"", "plaintext", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", "$argon2id$v=1$m=1,t=1,p=1$c2FsdA$aGFzaA"} {
		if err := hasher.Verify(hashed, "anything"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Verify(%q) = %v, want ErrInvalidCredentials", hashed, err)
		}
	}
}

func TestPasswordHasher_DecoyAlwaysFails(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(cheapParams)
	if err := hasher.VerifyDecoy("decoy-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected decoy verification to fail, got %v", err)
	}
}

func TestNewPasswordHasher_FillsDefaults(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(Argon2idParams{Memory: 2048})
	if hasher.params.Memory != 2048 {
		t.Fatalf("expected explicit memory to be kept, got %d", hasher.params.Memory)
	}
	if hasher.params.Iterations != DefaultArgon2idParams.Iterations || hasher.params.KeyLength != DefaultArgon2idParams.KeyLength {
		t.Fatalf("expected defaults to fill zero fields, got %+v", hasher.params)
	}
}

func TestParsePHC(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(cheapParams)
	encoded, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	decoded, err := parsePHC(encoded)
	if err != nil {
		t.Fatalf("parsePHC returned error: %v", err)
	}
	if decoded.params.Memory != cheapParams.Memory || len(decoded.salt) != int(cheapParams.SaltLength) || len(decoded.key) != int(cheapParams.KeyLength) {
		t.Fatalf("unexpected decoded hash %+v", decoded)
	}
	if decoded.String() != encoded {
		t.Fatalf("expected re-encoding to match, got %q", decoded.String())
	}

	tests := []struct {
		name    string
		encoded string
		want    error
	}{
		{"wrong algorithm", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", ErrInvalidPasswordHash},
		{"old version", "$argon2id$v=16$m=1,t=1,p=1$c2FsdA$aGFzaA", ErrIncompatiblePasswordVersion},
		{"zero cost", "$argon2id$v=19$m=0,t=1,p=1$c2FsdA$aGFzaA", ErrInvalidPasswordHash},
		{"bad salt", "$argon2id$v=19$m=8,t=1,p=1$!!$aGFzaA", ErrInvalidPasswordHash},
		{"empty key", "$argon2id$v=19$m=8,t=1,p=1$c2FsdA$", ErrInvalidPasswordHash},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parsePHC(tt.encoded); !errors.Is(err, tt.want) {
				t.Fatalf("parsePHC(%q) = %v, want %v", tt.encoded, err, tt.want)
			}
		})
	}
}
