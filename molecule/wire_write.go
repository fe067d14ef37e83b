package molecule

import "encoding/binary"

func appendNumber(dst []byte, n int) []byte {
	var tmp [NumberSize]byte
	// #nosec G115 -- molecule sizes are bounded by the u32 header width.
	binary.LittleEndian.PutUint32(tmp[:], uint32(n))
	return append(dst, tmp[:]...)
}

func appendU32le(dst []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(dst, tmp[:]...)
}

func appendU64le(dst []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(dst, tmp[:]...)
}

// EncodeBytes encodes b as a molecule `Bytes` fixvec.
func EncodeBytes(b []byte) []byte {
	out := make([]byte, 0, NumberSize+len(b))
	out = appendNumber(out, len(b))
	return append(out, b...)
}

// encodeOffsets builds a dynvec or table from already-encoded items.
func encodeOffsets(items [][]byte) []byte {
	header := NumberSize * (len(items) + 1)
	total := header
	for _, it := range items {
		total += len(it)
	}
	out := make([]byte, 0, total)
	out = appendNumber(out, total)
	off := header
	for _, it := range items {
		out = appendNumber(out, off)
		off += len(it)
	}
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}
