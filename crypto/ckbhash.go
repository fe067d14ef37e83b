package crypto

import (
	"hash"

	blake2b "github.com/minio/blake2b-simd"
)

const (
	HashDigestBytes = 32

	// HashPersonalization is the BLAKE2b personalization shared by every CKB hash.
	HashPersonalization = "ckb-default-hash"
)

// CKBHasher computes BLAKE2b-256 under the CKB personalization.
type CKBHasher struct{}

func newBlake2b256() (hash.Hash, error) {
	return blake2b.New(&blake2b.Config{
		Size:   HashDigestBytes,
		Person: []byte(HashPersonalization),
	})
}

func (CKBHasher) Blake2b256(input []byte) [32]byte {
	h, err := newBlake2b256()
	if err != nil {
		// Size and personalization are compile-time constants within the library bounds.
		panic("blake2b config: " + err.Error())
	}
	_, _ = h.Write(input)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Blake2b256 hashes input with the default CKB hasher.
func Blake2b256(input []byte) [32]byte {
	return CKBHasher{}.Blake2b256(input)
}
