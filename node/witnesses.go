package node

import "github.com/dotbitHQ/sub-account-custom-script/script"

// MemWitnessSource serves a fixed list of witnesses. Every Source addresses the same
// list, which matches a transaction where each input carries its own witness.
type MemWitnessSource struct {
	witnesses [][]byte
}

func NewMemWitnessSource(witnesses [][]byte) *MemWitnessSource {
	return &MemWitnessSource{witnesses: witnesses}
}

func (m *MemWitnessSource) Len() int { return len(m.witnesses) }

func (m *MemWitnessSource) LoadWitness(buf []byte, offset int, index int, _ script.Source) (int, error) {
	if index < 0 || index >= len(m.witnesses) {
		return 0, script.ErrIndexOutOfBound
	}
	if offset < 0 {
		return 0, script.SysErrItemMissing
	}
	w := m.witnesses[index]
	if offset > len(w) {
		offset = len(w)
	}
	rem := w[offset:]
	n := copy(buf, rem)
	if len(rem) > len(buf) {
		return n, &script.LengthNotEnoughError{Size: len(rem)}
	}
	return n, nil
}
