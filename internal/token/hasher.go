package token

import (
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
)

// PasswordHasher is the one-way hash collaborator.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hashed string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt. Passwords are NFC
// normalised first so the same visible string hashes identically across
// input methods.
type BcryptHasher struct {
	Cost int
}

// Hash produces a bcrypt hash of the normalised plaintext.
func (h BcryptHasher) Hash(plaintext string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(norm.NFC.String(plaintext)), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether the plaintext matches the stored hash.
func (h BcryptHasher) Compare(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(norm.NFC.String(plaintext))) == nil
}

var _ PasswordHasher = BcryptHasher{}
