// Package cryptox derives and checks the operator passphrase verifier.
//
// The server never keeps the passphrase itself: at startup it derives an
// argon2id key with a random salt and stores only the SHA-256 verifier of
// that key.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of salts produced by NewSalt.
const SaltSize = 16

// DeriveKey stretches a passphrase with argon2id (1 pass, 64 MiB, 4 lanes, 32-byte key).
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier hashes a derived key into the value kept for comparisons.
func MakeVerifier(key []byte) []byte {
	sum := sha256.Sum256(key)
	return sum[:]
}

// NewSalt returns SaltSize random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// Verifier checks candidate passphrases against one configured passphrase.
type Verifier struct {
	salt     []byte
	verifier []byte
}

// NewVerifier derives the verifier for passphrase with a fresh salt.
func NewVerifier(passphrase string) (*Verifier, error) {
	salt, err := NewSalt()
	if err != nil {
		return nil, err
	}
	return &Verifier{salt: salt, verifier: MakeVerifier(DeriveKey([]byte(passphrase), salt))}, nil
}

// Check reports whether candidate matches, in constant time.
func (v *Verifier) Check(candidate string) bool {
	got := MakeVerifier(DeriveKey([]byte(candidate), v.salt))
	return subtle.ConstantTimeCompare(got, v.verifier) == 1
}

// Wipe zeroes b.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
