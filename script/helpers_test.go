package script

import (
	"encoding/binary"
	"testing"

	"github.com/dotbitHQ/sub-account-custom-script/crypto"
	"github.com/dotbitHQ/sub-account-custom-script/molecule"
)

// memWitnesses serves witnesses with the partial-load semantics of the chain syscall
// and records every index it is asked for.
type memWitnesses struct {
	blobs   [][]byte
	loads   []int
	failAt  int
	failErr error
}

func (m *memWitnesses) LoadWitness(buf []byte, offset int, index int, _ Source) (int, error) {
	m.loads = append(m.loads, index)
	if m.failErr != nil && index == m.failAt {
		return 0, m.failErr
	}
	if index >= len(m.blobs) {
		return 0, ErrIndexOutOfBound
	}
	b := m.blobs[index]
	if offset > len(b) {
		offset = len(b)
	}
	rem := b[offset:]
	n := copy(buf, rem)
	if len(rem) > len(buf) {
		return n, &LengthNotEnoughError{Size: len(rem)}
	}
	return n, nil
}

func mustScriptErrCode(t *testing.T, err error) ErrorCode {
	t.Helper()
	se, ok := err.(*ScriptError)
	if !ok {
		t.Fatalf("expected *ScriptError, got %T: %v", err, err)
	}
	return se.Code
}

func expectCode(t *testing.T, err error, want ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", want)
	}
	if got := mustScriptErrCode(t, err); got != want {
		t.Fatalf("code=%s, want %s (%v)", got, want, err)
	}
}

// subAccountBytes encodes a sub-account whose label has one character per rune.
func subAccountBytes(label string) []byte {
	chars := make(molecule.AccountChars, 0, len(label))
	for _, r := range label {
		chars = append(chars, molecule.AccountChar{CharSetName: 2, Bytes: []byte(string(r))})
	}
	return subAccountWithChars(chars)
}

func subAccountWithChars(chars molecule.AccountChars) []byte {
	sa := &molecule.SubAccount{
		Account:      chars,
		Suffix:       []byte(".alice.bit"),
		RegisteredAt: 1_700_000_000,
		ExpiredAt:    1_731_536_000,
	}
	return sa.Encode()
}

// rawWitness builds a tagged witness around an arbitrary body and returns the
// commitment that authenticates it.
func rawWitness(version uint32, body []byte) ([]byte, [CommitmentBytes]byte) {
	w := append([]byte(nil), WitnessHeader[:]...)
	w = binary.LittleEndian.AppendUint32(w, version)
	w = append(w, body...)
	return w, ComputeCommitment(crypto.CKBHasher{}, body)
}

func tableWitness(version uint32, table FeeTable) ([]byte, [CommitmentBytes]byte) {
	return rawWitness(version, table.Encode())
}

func witnessArgv(action Action, quote, owner, das uint64, commitment [CommitmentBytes]byte, entries ...SubAccountArg) [][]byte {
	return EncodeArgs(&Args{
		Action:      action,
		Quote:       quote,
		OwnerProfit: owner,
		DasProfit:   das,
		Commitment:  &commitment,
		SubAccounts: entries,
	})
}
