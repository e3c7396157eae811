package scell

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// kdfContext carries what is needed to re-derive the same key from the same
// passphrase: the per-encryption random salt and the PBKDF2 iteration count.
// It is serialized into the auth token next to the header.
type kdfContext struct {
	iterations uint32
	salt       []byte
}

// size returns the serialized size of the context.
func (c *kdfContext) size() int { return kdfContextPrefixSize + len(c.salt) }

// KeyDeriver derives a symmetric key of the requested length from a
// passphrase and salt. The key length is dictated by the algorithm
// identifier, never by the caller.
type KeyDeriver interface {
	DeriveKey(passphrase, salt []byte, iterations, keyLen int) ([]byte, error)
}

// PBKDF2Deriver implements KeyDeriver with PBKDF2-HMAC-SHA256, the only
// derivation the auth token format defines.
type PBKDF2Deriver struct{}

// DeriveKey derives keyLen bytes from the passphrase.
func (PBKDF2Deriver) DeriveKey(passphrase, salt []byte, iterations, keyLen int) ([]byte, error) {
	if iterations <= 0 || keyLen <= 0 {
		return nil, ErrInvalidParameter
	}
	return pbkdf2.Key(passphrase, salt, iterations, keyLen, sha256.New), nil
}
