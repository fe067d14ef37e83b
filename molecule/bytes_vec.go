package molecule

import "bytes"

// EncodeBytesVec encodes items as a molecule `BytesVec` (dynvec of Bytes).
func EncodeBytesVec(items [][]byte) []byte {
	enc := make([][]byte, len(items))
	for i, it := range items {
		enc[i] = EncodeBytes(it)
	}
	return encodeOffsets(enc)
}

func DecodeBytesVec(b []byte) ([][]byte, error) {
	parts, err := splitOffsets(b, "BytesVec")
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(parts))
	for i, p := range parts {
		v, err := decodeBytes(p, "BytesVec item")
		if err != nil {
			return nil, err
		}
		out[i] = bytes.Clone(v)
	}
	return out, nil
}
