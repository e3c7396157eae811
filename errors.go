package scell

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrInvalidParameter reports malformed call-site arguments, such as an
	// empty passphrase or message.
	ErrInvalidParameter = errors.New("scell: invalid parameter")

	// ErrMalformed reports an auth token whose bytes fail structural
	// parsing: truncated buffers or inconsistent declared offsets.
	ErrMalformed = errors.New("scell: malformed auth token")

	// ErrAuthenticationFailed reports that decryption did not verify. It is
	// deliberately returned for a wrong passphrase, a tampered token or
	// ciphertext, an unsupported algorithm field, and a header/ciphertext
	// length mismatch alike, so the error carries no information an
	// attacker probing a container could use.
	ErrAuthenticationFailed = errors.New("scell: authentication failed")

	// ErrInternal reports that the cipher engine returned data of an
	// inconsistent length. This indicates a programming fault, not bad
	// input.
	ErrInternal = errors.New("scell: internal consistency failure")
)

// BufferTooSmallError reports that a caller-provided output buffer is nil or
// too small. It carries the authoritative required sizes: supplying buffers
// of exactly these sizes makes the subsequent call succeed.
type BufferTooSmallError struct {
	AuthTokenSize int // required auth token buffer size, 0 if not applicable
	MessageSize   int // required message or ciphertext buffer size
}

func (e *BufferTooSmallError) Error() string {
	if e.AuthTokenSize > 0 {
		return fmt.Sprintf("scell: buffer too small: need %d auth token bytes and %d message bytes",
			e.AuthTokenSize, e.MessageSize)
	}
	return fmt.Sprintf("scell: buffer too small: need %d message bytes", e.MessageSize)
}

// IsBufferTooSmall reports whether err is a *BufferTooSmallError.
func IsBufferTooSmall(err error) bool {
	var bte *BufferTooSmallError
	return errors.As(err, &bte)
}
