package scell

import "encoding/binary"

const (
	// authTokenPrefixSize is the fixed portion of the header: five uint32
	// fields preceding the variable-length IV and tag.
	authTokenPrefixSize = 5 * 4

	// kdfContextPrefixSize is the fixed portion of the KDF context:
	// iteration count (uint32) and salt length (uint16).
	kdfContextPrefixSize = 4 + 2
)

// authTokenHeader mirrors the serialized auth token header. It is created
// fresh on encryption and reconstructed by parsing on decryption; once
// written into a container it is never modified.
type authTokenHeader struct {
	alg           AlgorithmID
	iv            []byte
	authTag       []byte
	messageLength uint32

	// kdfContext holds the raw context bytes after parsing. When writing,
	// only kdfContextLength matters: the bytes are appended by
	// writeKDFContext.
	kdfContext       []byte
	kdfContextLength uint32
}

// size returns the total serialized size of the header including its KDF
// context.
func (h *authTokenHeader) size() int {
	return authTokenPrefixSize + len(h.iv) + len(h.authTag) + int(h.kdfContextLength)
}

// writeAuthToken serializes the header into buf. The KDF context is written
// as a length only; writeKDFContext appends the actual bytes at the offset
// implied by the header, so header and context stay independently
// computable.
func writeAuthToken(h *authTokenHeader, buf []byte) error {
	if len(buf) < h.size() {
		return &BufferTooSmallError{AuthTokenSize: h.size(), MessageSize: int(h.messageLength)}
	}
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.alg))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(h.iv)))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(h.authTag)))
	binary.LittleEndian.PutUint32(buf[12:16], h.messageLength)
	binary.LittleEndian.PutUint32(buf[16:20], h.kdfContextLength)
	off := authTokenPrefixSize
	off += copy(buf[off:], h.iv)
	copy(buf[off:], h.authTag)
	return nil
}

// writeKDFContext appends the serialized KDF context immediately after the
// header fields in buf. The header must already declare the context length.
func writeKDFContext(h *authTokenHeader, ctx *kdfContext, buf []byte) error {
	if int(h.kdfContextLength) != ctx.size() {
		return ErrInternal
	}
	if len(buf) < h.size() {
		return &BufferTooSmallError{AuthTokenSize: h.size(), MessageSize: int(h.messageLength)}
	}
	off := authTokenPrefixSize + len(h.iv) + len(h.authTag)
	binary.LittleEndian.PutUint32(buf[off:off+4], ctx.iterations)
	binary.LittleEndian.PutUint16(buf[off+4:off+6], uint16(len(ctx.salt)))
	copy(buf[off+kdfContextPrefixSize:], ctx.salt)
	return nil
}

// readAuthToken structurally parses an auth token. Declared field lengths
// are summed in 64 bits so oversized 32-bit declarations cannot wrap the
// bounds check. Algorithm semantics are not validated here: the codec stays
// algorithm-agnostic and the caller decides what it accepts.
func readAuthToken(buf []byte) (*authTokenHeader, error) {
	if len(buf) < authTokenPrefixSize {
		return nil, ErrMalformed
	}
	h := &authTokenHeader{
		alg:           AlgorithmID(binary.LittleEndian.Uint32(buf[0:4])),
		messageLength: binary.LittleEndian.Uint32(buf[12:16]),
	}
	ivLen := uint64(binary.LittleEndian.Uint32(buf[4:8]))
	tagLen := uint64(binary.LittleEndian.Uint32(buf[8:12]))
	kdfLen := uint64(binary.LittleEndian.Uint32(buf[16:20]))
	if authTokenPrefixSize+ivLen+tagLen+kdfLen > uint64(len(buf)) {
		return nil, ErrMalformed
	}
	off := uint64(authTokenPrefixSize)
	h.iv = buf[off : off+ivLen]
	off += ivLen
	h.authTag = buf[off : off+tagLen]
	off += tagLen
	h.kdfContext = buf[off : off+kdfLen]
	h.kdfContextLength = uint32(kdfLen)
	return h, nil
}

// readKDFContext parses the salt and iteration count co-serialized with the
// header, using the bounds established by readAuthToken.
func readKDFContext(h *authTokenHeader) (*kdfContext, error) {
	raw := h.kdfContext
	if len(raw) < kdfContextPrefixSize {
		return nil, ErrMalformed
	}
	saltLen := int(binary.LittleEndian.Uint16(raw[4:6]))
	if kdfContextPrefixSize+saltLen > len(raw) {
		return nil, ErrMalformed
	}
	return &kdfContext{
		iterations: binary.LittleEndian.Uint32(raw[0:4]),
		salt:       raw[kdfContextPrefixSize : kdfContextPrefixSize+saltLen],
	}, nil
}

// authTokenMessageSize is a shallow parse yielding only the plaintext length
// declared by an auth token, without touching the IV, tag, or KDF fields. It
// backs the decrypt buffer-size query on untrusted containers.
func authTokenMessageSize(buf []byte) (uint32, error) {
	if len(buf) < authTokenPrefixSize {
		return 0, ErrMalformed
	}
	return binary.LittleEndian.Uint32(buf[12:16]), nil
}
