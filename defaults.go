package scell

// Current encryption defaults. These may change transparently between
// releases: only the encrypt path reads them. The decrypt path works
// entirely from values parsed out of the auth token, so containers produced
// under older defaults keep opening.
const (
	// DefaultAlgorithm seals with AES-256-GCM under a PBKDF2-derived key.
	DefaultAlgorithm = AlgAESGCM | AlgPBKDF2 | AlgKey256

	// DefaultIterations is the PBKDF2 iteration count for new containers.
	DefaultIterations = 200000

	defaultIVSize   = 12
	defaultTagSize  = 16
	defaultSaltSize = 16
)

// DefaultAuthTokenSize is the auth token size produced by the current
// defaults. It is the size reported by the encrypt buffer-size query.
const DefaultAuthTokenSize = authTokenPrefixSize + defaultIVSize + defaultTagSize +
	kdfContextPrefixSize + defaultSaltSize
