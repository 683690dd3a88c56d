// Package hasher wraps bcrypt for password hashing and verification.
//
// bcrypt embeds a fresh random salt in every digest, so two hashes of the
// same password differ and the only valid comparison is Verify.
package hasher

import "golang.org/x/crypto/bcrypt"

// Hash computes a salted, adaptive digest of the plaintext password.
func Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether password matches the stored digest. The comparison
// is constant time. Malformed digests yield false, never an error.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
