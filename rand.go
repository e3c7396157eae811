package scell

import (
	"crypto/rand"
	"fmt"
)

// RandomSource fills buffers with cryptographically secure random bytes.
type RandomSource interface {
	ReadRandom(p []byte) error
}

// SystemRandom reads from the operating system CSPRNG.
type SystemRandom struct{}

// ReadRandom fills p from crypto/rand.
func (SystemRandom) ReadRandom(p []byte) error {
	if _, err := rand.Read(p); err != nil {
		return fmt.Errorf("scell: random source: %w", err)
	}
	return nil
}
