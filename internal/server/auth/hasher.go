// Package auth contains the authentication primitives of the server:
// salted PBKDF2 credential hashing and stateless HS256 session tokens.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// saltSize is the number of random bytes behind a salt. The salt is
	// stored and fed to the KDF in its hex form.
	saltSize = 16

	hashIterations = 100000
	hashKeyLength  = 32
)

// GenerateSalt returns a fresh per-account salt as a 32-character hex
// string. Each account gets its own salt, generated exactly once at
// registration.
func GenerateSalt() (string, error) {
	return common.MakeRandHexString(saltSize)
}

// HashPassword derives a hex-encoded digest from a plaintext password and a
// hex salt using PBKDF2-SHA256 with a fixed high iteration count. The same
// (password, salt) pair always yields the same digest.
func HashPassword(password string, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, hashKeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword re-derives the digest from the supplied password and the
// stored salt and compares it to the stored digest in constant time.
func VerifyPassword(password string, salt string, digest string) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}
