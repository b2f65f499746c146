package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters. These only apply to newly created hashes; the
// parameters used at verification time are the ones embedded in the encoded
// hash, so existing credentials keep verifying after a cost bump.
const (
	memory      = 64 * 1024 // Memory usage in KiB (64 MiB)
	iterations  = 3         // Iteration count
	parallelism = 4         // Number of threads
	keyLength   = 32        // Length of the derived key
	saltLength  = 16        // Length of the salt
)

// ErrMalformedHash reports a stored credential that cannot be parsed as a
// PHC-encoded Argon2id hash. It is distinct from a plain password mismatch:
// a mismatch is a normal outcome, a malformed hash means the stored record
// is corrupt or came from a foreign import.
var ErrMalformedHash = errors.New("cryptox: malformed password hash")

// HashPassword generates a PHC-format Argon2id hash string including salt and
// parameters. A fresh random salt is drawn per call, so hashing the same
// password twice yields different strings. The only error path is a failing
// system RNG, which leaves the crypto subsystem unusable.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: reading salt: %w", err)
	}
	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory,
		iterations,
		parallelism,
		b64Salt,
		b64Hash,
	), nil
}

// VerifyPassword compares a plaintext password against a PHC-style Argon2id
// hash. It reports (false, nil) when the password simply does not match, and
// an error wrapping ErrMalformedHash when encodedHash is not a parseable
// Argon2id string at all. The digest comparison is constant-time.
func VerifyPassword(password, encodedHash string) (bool, error) {
	mem, iters, par, salt, expected, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	// Re-derive with the embedded parameters, not the current defaults.
	computed := argon2.IDKey(
		[]byte(password),
		salt,
		iters,
		mem,
		par,
		uint32(len(expected)), // #nosec G115 - digest lengths are tiny
	)

	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

// decodeHash parses "$argon2id$v=19$m=X,t=Y,p=Z$salt$hash" into its parts.
func decodeHash(
	encodedHash string,
) (mem, iters uint32, par uint8, salt, hash []byte, err error) {
	parts := make([]string, 0, 6)
	start := 0
	for i := range len(encodedHash) {
		if encodedHash[i] == '$' {
			parts = append(parts, encodedHash[start:i])
			start = i + 1
		}
	}
	parts = append(parts, encodedHash[start:])

	// Expected structure: ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	if len(parts) != 6 || parts[0] != "" {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: expected 6 $-separated parts", ErrMalformedHash)
	}
	if parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: not argon2id", ErrMalformedHash)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: unparsable version", ErrMalformedHash)
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, fmt.Errorf(
			"%w: unsupported version %d", ErrMalformedHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: unparsable parameters", ErrMalformedHash)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: undecodable salt", ErrMalformedHash)
	}
	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: undecodable digest", ErrMalformedHash)
	}
	if len(hash) == 0 {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: empty digest", ErrMalformedHash)
	}

	return mem, iters, par, salt, hash, nil
}
