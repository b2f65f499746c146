package cryptox

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/argon2"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			// Verify PHC format
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"),
				"hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Equal(t, "", parts[0]) // empty before first $
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Equal(t, "m=65536,t=3,p=4", parts[3])
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)

	hash2, err := HashPassword(password)
	require.NoError(t, err)

	hash3, err := HashPassword(password)
	require.NoError(t, err)

	// Each hash should be different due to unique salts
	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
	require.NotEqual(t, hash2, hash3, "hashes should differ due to unique salts")
	require.NotEqual(t, hash1, hash3, "hashes should differ due to unique salts")

	// But all should verify the same password
	for _, h := range []string{hash1, hash2, hash3} {
		ok, err := VerifyPassword(password, h)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestVerifyPassword_Success(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)

			ok, err := VerifyPassword(tt.password, hash)
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	correctPassword := "correct-password"
	hash, err := HashPassword(correctPassword)
	require.NoError(t, err)

	tests := []struct {
		name          string
		wrongPassword string
	}{
		{"completely wrong", "wrong-password"},
		{"case difference", "Correct-Password"},
		{"extra space", "correct-password "},
		{"empty password", ""},
		{"similar password", "correct-passwor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A mismatch is (false, nil) - never an error
			ok, err := VerifyPassword(tt.wrongPassword, hash)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	password := "test-password"

	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"plaintext leftover", "hunter2"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=65536"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=65536,t=3,p=4$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=65536,t=3,p=4$c2FsdA$aGFzaA"},
		{"missing version", "$argon2id$m=65536,t=3,p=4$c2FsdA$aGFzaA"},
		{"empty digest", "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Corrupt stored data must be distinguishable from a mismatch
			ok, err := VerifyPassword(password, tt.invalidHash)
			require.ErrorIs(t, err, ErrMalformedHash)
			require.False(t, ok)
		})
	}
}

func TestVerifyPassword_EmbeddedParameters(t *testing.T) {
	// A hash produced with different costs than the current defaults must
	// still verify, because the parameters travel inside the encoded string.
	salt := []byte("saltsaltsaltsalt")
	digest := argon2.IDKey([]byte("legacy"), salt, 1, 32, 1, 32)
	legacy := fmt.Sprintf(
		"$argon2id$v=19$m=32,t=1,p=1$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)

	ok, err := VerifyPassword("legacy", legacy)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("not-legacy", legacy)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyPassword_TimingAttackResistance(t *testing.T) {
	// Sanity check that wildly different candidate lengths all take the
	// constant-time comparison path and simply report a mismatch.
	password := "correct-password"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	wrongPasswords := []string{
		"a",                        // very short
		"wrong-password",           // same length
		strings.Repeat("x", 10000), // very long
	}

	for _, wp := range wrongPasswords {
		ok, err := VerifyPassword(wp, hash)
		require.NoError(t, err)
		require.False(t, ok)
	}
}
