package scell

import (
	"crypto/aes"
	"crypto/cipher"
)

// newAEAD builds the AEAD engine for an algorithm identifier and a final
// key. The identifier must carry the no-KDF tag: key derivation happens in
// the sealing layer, never here.
func newAEAD(alg AlgorithmID, key []byte, ivLen int) (cipher.AEAD, error) {
	if alg.KDF() != AlgNoKDF {
		return nil, ErrInvalidParameter
	}
	if alg.Cipher() != AlgAESGCM || alg.Padding() != AlgNoPadding {
		return nil, ErrInvalidParameter
	}
	if !alg.supportedKeyLength() || len(key) != alg.KeyBytes() {
		return nil, ErrInvalidParameter
	}
	if ivLen <= 0 {
		return nil, ErrInvalidParameter
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrInvalidParameter
	}
	aead, err := cipher.NewGCMWithNonceSize(block, ivLen)
	if err != nil {
		return nil, ErrInvalidParameter
	}
	return aead, nil
}

// aeadEncrypt seals message with associated data and returns the ciphertext
// and the detached authentication tag. The ciphertext is exactly as long as
// the message.
func aeadEncrypt(alg AlgorithmID, key, iv, context, message []byte) (ciphertext, tag []byte, err error) {
	aead, err := newAEAD(alg, key, len(iv))
	if err != nil {
		return nil, nil, err
	}
	sealed := aead.Seal(nil, iv, message, context)
	split := len(sealed) - aead.Overhead()
	return sealed[:split], sealed[split:], nil
}

// aeadDecrypt verifies the detached tag over ciphertext and associated data
// and, only if it verifies, decrypts into dst. dst must have capacity for
// the full plaintext.
func aeadDecrypt(alg AlgorithmID, key, iv, context, ciphertext, tag, dst []byte) ([]byte, error) {
	aead, err := newAEAD(alg, key, len(iv))
	if err != nil {
		return nil, err
	}
	if len(tag) != aead.Overhead() {
		return nil, ErrAuthenticationFailed
	}
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	message, err := aead.Open(dst[:0], iv, sealed, context)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return message, nil
}
