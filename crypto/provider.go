package crypto

// Hasher is the narrow hashing interface used by the script core.
// Implementations must be deterministic and unkeyed.
type Hasher interface {
	Blake2b256(input []byte) [32]byte
}
