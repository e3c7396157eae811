package scell

import (
	"errors"
	"fmt"
	"math"
)

// Config wires the collaborators a Cell uses. Nil fields select the
// defaults.
type Config struct {
	// Random supplies salts and IVs. Defaults to the system CSPRNG.
	Random RandomSource

	// KDF derives keys from passphrases. Defaults to PBKDF2-HMAC-SHA256.
	KDF KeyDeriver
}

// Cell seals messages under passphrase-derived keys and opens the resulting
// containers. A Cell holds no per-call state: concurrent use from multiple
// goroutines is safe as long as each call supplies its own buffers and the
// configured collaborators are themselves thread-safe.
type Cell struct {
	random RandomSource
	kdf    KeyDeriver
}

// New creates a Cell. A nil config selects the default collaborators.
func New(config *Config) *Cell {
	c := &Cell{random: SystemRandom{}, kdf: PBKDF2Deriver{}}
	if config != nil {
		if config.Random != nil {
			c.random = config.Random
		}
		if config.KDF != nil {
			c.kdf = config.KDF
		}
	}
	return c
}

var defaultCell = New(nil)

// Encrypt seals message under a key derived from passphrase and writes the
// auth token and ciphertext into the caller's buffers, returning the number
// of bytes written to each. Context is optional associated data: it is
// authenticated but not encrypted, and the same bytes must be supplied to
// Decrypt.
//
// If authToken or encrypted is nil or too small, Encrypt performs no
// cryptographic work and returns a *BufferTooSmallError carrying the exact
// required sizes.
func (c *Cell) Encrypt(passphrase, message, context, authToken, encrypted []byte) (int, int, error) {
	if len(passphrase) == 0 {
		return 0, 0, ErrInvalidParameter
	}
	if len(message) == 0 {
		return 0, 0, ErrInvalidParameter
	}
	if len(authToken) < DefaultAuthTokenSize || len(encrypted) < len(message) {
		return 0, 0, &BufferTooSmallError{
			AuthTokenSize: DefaultAuthTokenSize,
			MessageSize:   len(message),
		}
	}
	return c.encrypt(passphrase, message, context, authToken, encrypted)
}

func (c *Cell) encrypt(passphrase, message, context, authToken, encrypted []byte) (int, int, error) {
	// The message length travels as a 32-bit field.
	if uint64(len(message)) > math.MaxUint32 {
		return 0, 0, ErrInvalidParameter
	}

	salt := make([]byte, defaultSaltSize)
	iv := make([]byte, defaultIVSize)
	defer Wipe(salt)
	defer Wipe(iv)

	kdf := &kdfContext{iterations: DefaultIterations, salt: salt}
	hdr := &authTokenHeader{
		alg:              DefaultAlgorithm,
		iv:               iv,
		messageLength:    uint32(len(message)),
		kdfContextLength: uint32(kdf.size()),
	}

	if err := c.random.ReadRandom(salt); err != nil {
		return 0, 0, err
	}

	key, err := c.kdf.DeriveKey(passphrase, salt, int(kdf.iterations), hdr.alg.KeyBytes())
	if err != nil {
		return 0, 0, fmt.Errorf("scell: key derivation: %w", err)
	}
	defer Wipe(key)

	if err := c.random.ReadRandom(iv); err != nil {
		return 0, 0, err
	}

	// The derived key is final: the engine gets the no-KDF tag so it does
	// not derive again.
	ciphertext, tag, err := aeadEncrypt(hdr.alg.WithoutKDF(), key, iv, context, message)
	if err != nil {
		return 0, 0, err
	}
	defer Wipe(tag)
	if len(tag) != defaultTagSize {
		// A tag of unexpected length would corrupt every offset in the
		// emitted token.
		return 0, 0, ErrInternal
	}
	hdr.authTag = tag

	if len(authToken) < hdr.size() {
		return 0, 0, &BufferTooSmallError{AuthTokenSize: hdr.size(), MessageSize: len(message)}
	}
	if err := writeAuthToken(hdr, authToken); err != nil {
		return 0, 0, err
	}
	if err := writeKDFContext(hdr, kdf, authToken); err != nil {
		return 0, 0, err
	}
	copy(encrypted, ciphertext)
	return hdr.size(), len(message), nil
}

// Decrypt opens a container produced by Encrypt, writing the plaintext into
// message and returning the number of bytes written. Context must be the
// associated data supplied at encryption time, or nil if there was none.
//
// If message is nil or too small, Decrypt determines the required size from
// a shallow parse of the token alone and returns a *BufferTooSmallError
// before deriving any key or verifying any tag.
func (c *Cell) Decrypt(passphrase, context, authToken, encrypted, message []byte) (int, error) {
	if len(passphrase) == 0 {
		return 0, ErrInvalidParameter
	}
	if len(authToken) == 0 {
		return 0, ErrInvalidParameter
	}
	expected, err := authTokenMessageSize(authToken)
	if err != nil {
		return 0, err
	}
	if uint64(len(message)) < uint64(expected) {
		return 0, &BufferTooSmallError{MessageSize: int(expected)}
	}
	// encrypted may be omitted while only querying the plaintext size.
	if len(encrypted) == 0 {
		return 0, ErrInvalidParameter
	}
	return c.decrypt(passphrase, context, authToken, encrypted, message)
}

func (c *Cell) decrypt(passphrase, context, authToken, encrypted, message []byte) (int, error) {
	hdr, err := readAuthToken(authToken)
	if err != nil {
		return 0, err
	}

	if uint64(hdr.messageLength) != uint64(len(encrypted)) {
		return 0, ErrAuthenticationFailed
	}

	// The KDF field must name a derivation this mode supports. In
	// particular the no-KDF tag marks master-key containers, which a
	// passphrase cannot open.
	if hdr.alg.KDF() != AlgPBKDF2 {
		return 0, ErrAuthenticationFailed
	}
	// The algorithm also dictates the length of the key to derive.
	if !hdr.alg.supportedKeyLength() {
		return 0, ErrAuthenticationFailed
	}
	if !hdr.alg.ReservedBitsValid() {
		return 0, ErrAuthenticationFailed
	}

	kdf, err := readKDFContext(hdr)
	if err != nil {
		return 0, err
	}

	// Every parameter comes from the container, never from the current
	// defaults: tokens sealed under older defaults must keep opening.
	key, err := c.kdf.DeriveKey(passphrase, kdf.salt, int(kdf.iterations), hdr.alg.KeyBytes())
	if err != nil {
		return 0, ErrAuthenticationFailed
	}
	defer Wipe(key)

	out, err := aeadDecrypt(hdr.alg.WithoutKDF(), key, hdr.iv, context, encrypted, hdr.authTag, message)
	if err != nil {
		return 0, ErrAuthenticationFailed
	}
	if len(out) != len(encrypted) {
		return 0, ErrInternal
	}
	return len(out), nil
}

// Seal is the allocating form of Encrypt: it returns a freshly allocated
// auth token and ciphertext.
func (c *Cell) Seal(passphrase, message, context []byte) (token, encrypted []byte, err error) {
	token = make([]byte, DefaultAuthTokenSize)
	encrypted = make([]byte, len(message))
	n, m, err := c.Encrypt(passphrase, message, context, token, encrypted)
	if err != nil {
		return nil, nil, err
	}
	return token[:n], encrypted[:m], nil
}

// Open is the allocating form of Decrypt: it sizes the plaintext buffer via
// the buffer-size query and returns the recovered message.
func (c *Cell) Open(passphrase, context, token, encrypted []byte) ([]byte, error) {
	_, err := c.Decrypt(passphrase, context, token, encrypted, nil)
	var small *BufferTooSmallError
	if !errors.As(err, &small) {
		if err == nil {
			err = ErrInternal
		}
		return nil, err
	}
	message := make([]byte, small.MessageSize)
	n, err := c.Decrypt(passphrase, context, token, encrypted, message)
	if err != nil {
		return nil, err
	}
	return message[:n], nil
}

// Encrypt seals message with the default Cell. See Cell.Encrypt.
func Encrypt(passphrase, message, context, authToken, encrypted []byte) (int, int, error) {
	return defaultCell.Encrypt(passphrase, message, context, authToken, encrypted)
}

// Decrypt opens a container with the default Cell. See Cell.Decrypt.
func Decrypt(passphrase, context, authToken, encrypted, message []byte) (int, error) {
	return defaultCell.Decrypt(passphrase, context, authToken, encrypted, message)
}

// Seal seals message with the default Cell. See Cell.Seal.
func Seal(passphrase, message, context []byte) ([]byte, []byte, error) {
	return defaultCell.Seal(passphrase, message, context)
}

// Open opens a container with the default Cell. See Cell.Open.
func Open(passphrase, context, token, encrypted []byte) ([]byte, error) {
	return defaultCell.Open(passphrase, context, token, encrypted)
}
