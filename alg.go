package scell

// AlgorithmID is the bit-packed symmetric algorithm descriptor stored in the
// auth token header. Four non-overlapping fields describe the cipher mode,
// key derivation function, padding mode, and key length; every bit outside
// those fields is reserved and must be zero.
type AlgorithmID uint32

const (
	// AlgAESGCM selects AES in Galois/Counter Mode.
	AlgAESGCM AlgorithmID = 0x40000000

	// AlgPBKDF2 marks a key derived from a passphrase with
	// PBKDF2-HMAC-SHA256.
	AlgPBKDF2 AlgorithmID = 0x01000000
	// AlgNoKDF marks a key used as-is. Containers carrying this tag belong
	// to the master-key API and cannot be opened with a passphrase.
	AlgNoKDF AlgorithmID = 0x00000000

	// AlgNoPadding and AlgPKCS7Padding select the padding mode. AEAD modes
	// use no padding.
	AlgNoPadding    AlgorithmID = 0x00000000
	AlgPKCS7Padding AlgorithmID = 0x00010000

	// Key length field values, in bits.
	AlgKey256 AlgorithmID = 0x00000100
	AlgKey192 AlgorithmID = 0x000000c0
	AlgKey128 AlgorithmID = 0x00000080
)

const (
	algCipherMask    AlgorithmID = 0xf0000000
	algKDFMask       AlgorithmID = 0x0f000000
	algPaddingMask   AlgorithmID = 0x000f0000
	algKeyLengthMask AlgorithmID = 0x00000fff
)

// Cipher returns the cipher mode field.
func (a AlgorithmID) Cipher() AlgorithmID { return a & algCipherMask }

// KDF returns the key derivation field.
func (a AlgorithmID) KDF() AlgorithmID { return a & algKDFMask }

// Padding returns the padding mode field.
func (a AlgorithmID) Padding() AlgorithmID { return a & algPaddingMask }

// KeyBytes returns the key length in bytes.
func (a AlgorithmID) KeyBytes() int { return int(a&algKeyLengthMask) / 8 }

// WithoutKDF returns the identifier with the key derivation field cleared to
// AlgNoKDF. The sealing layer derives keys itself and hands the cipher
// engine a final key, so the engine must see the no-KDF tag.
func (a AlgorithmID) WithoutKDF() AlgorithmID { return a&^algKDFMask | AlgNoKDF }

// ReservedBitsValid reports whether all bits outside the four defined fields
// are zero.
func (a AlgorithmID) ReservedBitsValid() bool {
	const used = algCipherMask | algKDFMask | algPaddingMask | algKeyLengthMask
	return a&^used == 0
}

// supportedKeyLength reports whether the key length field is exactly one of
// the defined values. The field is matched before the division to bytes:
// non-canonical values such as 257 bits must not truncate into a valid key
// size.
func (a AlgorithmID) supportedKeyLength() bool {
	switch a & algKeyLengthMask {
	case AlgKey128, AlgKey192, AlgKey256:
		return true
	}
	return false
}

// String returns a human-readable description of the identifier.
func (a AlgorithmID) String() string {
	switch {
	case a.Cipher() != AlgAESGCM:
		return "unknown"
	case a.KDF() == AlgPBKDF2:
		switch a & algKeyLengthMask {
		case AlgKey256:
			return "aes-256-gcm+pbkdf2"
		case AlgKey192:
			return "aes-192-gcm+pbkdf2"
		case AlgKey128:
			return "aes-128-gcm+pbkdf2"
		}
		return "unknown"
	case a.KDF() == AlgNoKDF:
		return "aes-gcm"
	default:
		return "unknown"
	}
}
