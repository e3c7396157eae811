// Package scell implements passphrase-based authenticated encryption with a
// self-describing binary container.
//
// # Overview
//
// A message sealed with Seal (or the lower-level Encrypt) is protected by
// AES-256-GCM under a key derived from the passphrase with
// PBKDF2-HMAC-SHA256. The call produces two buffers: the ciphertext, which is
// exactly as long as the message, and an "auth token" recording everything a
// future decryptor needs — the algorithm identifier, IV, authentication tag,
// key derivation parameters and salt, and the message length. Neither the
// passphrase nor the derived key is ever stored.
//
// Decryption reads every parameter back out of the token, so containers
// sealed by older releases keep opening after the library's defaults change.
//
// # Basic Usage
//
//	token, encrypted, err := scell.Seal(passphrase, message, nil)
//	if err != nil {
//	    panic(err)
//	}
//
//	message, err = scell.Open(passphrase, nil, token, encrypted)
//	if errors.Is(err, scell.ErrAuthenticationFailed) {
//	    // wrong passphrase, or the token or ciphertext was tampered with
//	}
//
// Optional associated data (the third argument) is authenticated but not
// encrypted: Open fails unless the same bytes are supplied again.
//
// Encrypt and Decrypt write into caller-provided buffers instead of
// allocating. When an output buffer is nil or too small they return a
// *BufferTooSmallError carrying the exact required sizes before any random
// bytes are drawn or any key is derived, so sizing a buffer is a
// side-effect-free query even on untrusted input.
//
// # Container Format
//
// All integers are little-endian. The auth token is the header followed
// immediately by the KDF context:
//
//   - Algorithm identifier (4 bytes): bit-packed cipher, key length,
//     padding, and KDF choice
//   - IV length (4 bytes), tag length (4 bytes)
//   - Message length (4 bytes)
//   - KDF context length (4 bytes)
//   - IV (variable), authentication tag (variable)
//   - KDF context: iteration count (4 bytes), salt length (2 bytes),
//     salt (variable)
//
// The ciphertext travels in a separate sibling buffer whose length must
// equal the message length declared by the token.
//
// # Security Considerations
//
// Decryption failures are deliberately opaque: a wrong passphrase, a
// tampered token, a tampered ciphertext, and an unsupported algorithm field
// all surface as ErrAuthenticationFailed, so the error cannot be used as an
// oracle against attacker-supplied containers. Intermediate secrets (derived
// key, salt, IV, tag) are wiped before every return, on success and failure
// alike.
//
// Not protected against: memory dumps while the plaintext is in memory,
// side-channel attacks, and weak passphrases (no strength policy is
// enforced).
package scell
