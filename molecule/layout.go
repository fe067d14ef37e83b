package molecule

import "encoding/binary"

// NumberSize is the width of every molecule header number (item count, total size, offset).
const NumberSize = 4

func unpackNumber(b []byte) int {
	return int(binary.LittleEndian.Uint32(b[:NumberSize]))
}

// fixvecCount checks that b is a fixvec of itemSize-byte items and returns its item count.
func fixvecCount(b []byte, itemSize int, name string) (int, error) {
	if len(b) < NumberSize {
		return 0, malformed("%s: header is %d bytes, want >= %d", name, len(b), NumberSize)
	}
	count := unpackNumber(b)
	if itemSize <= 0 {
		return 0, malformed("%s: invalid item size %d", name, itemSize)
	}
	if count > (len(b)-NumberSize)/itemSize {
		return 0, malformed("%s: item count %d exceeds %d bytes of data", name, count, len(b)-NumberSize)
	}
	if want := NumberSize + count*itemSize; len(b) != want {
		return 0, malformed("%s: total size %d, want %d", name, len(b), want)
	}
	return count, nil
}

// splitOffsets splits a dynvec or table into its items using the offset header.
func splitOffsets(b []byte, name string) ([][]byte, error) {
	if len(b) < NumberSize {
		return nil, malformed("%s: header is %d bytes, want >= %d", name, len(b), NumberSize)
	}
	total := unpackNumber(b)
	if total != len(b) {
		return nil, malformed("%s: total size field %d, actual %d", name, total, len(b))
	}
	if total == NumberSize {
		return nil, nil
	}
	if total < NumberSize*2 {
		return nil, malformed("%s: total size %d too small for an offset header", name, total)
	}
	first := unpackNumber(b[NumberSize:])
	if first%NumberSize != 0 || first < NumberSize*2 {
		return nil, malformed("%s: first offset %d is not a valid header size", name, first)
	}
	if first > total {
		return nil, malformed("%s: header size %d exceeds total size %d", name, first, total)
	}
	count := first/NumberSize - 1

	offsets := make([]int, count+1)
	for i := 0; i < count; i++ {
		offsets[i] = unpackNumber(b[NumberSize*(i+1):])
	}
	offsets[count] = total
	for i := 0; i < count; i++ {
		if offsets[i] > offsets[i+1] {
			return nil, malformed("%s: offset %d (%d) exceeds next offset %d", name, i, offsets[i], offsets[i+1])
		}
	}

	items := make([][]byte, count)
	for i := 0; i < count; i++ {
		items[i] = b[offsets[i]:offsets[i+1]]
	}
	return items, nil
}

// splitTable splits a table and checks that it carries exactly fieldCount fields.
func splitTable(b []byte, fieldCount int, name string) ([][]byte, error) {
	fields, err := splitOffsets(b, name)
	if err != nil {
		return nil, err
	}
	if len(fields) != fieldCount {
		return nil, malformed("%s: field count %d, want %d", name, len(fields), fieldCount)
	}
	return fields, nil
}

func decodeBytes(b []byte, name string) ([]byte, error) {
	n, err := fixvecCount(b, 1, name)
	if err != nil {
		return nil, err
	}
	return b[NumberSize : NumberSize+n], nil
}

func decodeFixed(b []byte, size int, name string) ([]byte, error) {
	if len(b) != size {
		return nil, malformed("%s: size %d, want %d", name, len(b), size)
	}
	return b, nil
}

func decodeU8(b []byte, name string) (uint8, error) {
	v, err := decodeFixed(b, 1, name)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func decodeU32(b []byte, name string) (uint32, error) {
	v, err := decodeFixed(b, 4, name)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(v), nil
}

func decodeU64(b []byte, name string) (uint64, error) {
	v, err := decodeFixed(b, 8, name)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(v), nil
}
