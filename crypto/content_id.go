package crypto

import "golang.org/x/crypto/sha3"

// ContentID is the SHA3-256 digest used to address stored witness sets.
// It is host-side only and never part of the on-chain commitment.
func ContentID(input []byte) [32]byte {
	h := sha3.New256()
	_, _ = h.Write(input)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
