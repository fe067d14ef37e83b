package script

import (
	"bytes"
	"encoding/binary"
	"errors"

	"go.uber.org/zap"

	"github.com/dotbitHQ/sub-account-custom-script/crypto"
)

const (
	WitnessHeaderBytes  = 10
	WitnessVersionBytes = 4
	witnessPrefixBytes  = WitnessHeaderBytes + WitnessVersionBytes
)

// WitnessHeader tags the witness that carries the fee table ("script-001").
var WitnessHeader = [WitnessHeaderBytes]byte{115, 99, 114, 105, 112, 116, 45, 48, 48, 49}

// FeeTableWitness is an authenticated fee table and where it was found.
type FeeTableWitness struct {
	Index   int
	Version uint32
	Table   FeeTable
}

// FindFeeTable scans witnesses in index order and authenticates the first one
// tagged with WitnessHeader against commitment. Later tagged witnesses are never read.
func FindFeeTable(src WitnessSource, hasher crypto.Hasher, commitment [CommitmentBytes]byte, log *zap.Logger) (*FeeTableWitness, error) {
	if log == nil {
		log = zap.NewNop()
	}
	for i := 0; ; i++ {
		blob, tagged, err := loadTaggedWitness(src, i)
		if errors.Is(err, ErrIndexOutOfBound) {
			return nil, scripterr(ERR_CAN_NOT_FIND_WITNESS, "no witness tagged %q among %d witnesses", WitnessHeader[:], i)
		}
		if err != nil {
			return nil, err
		}
		if !tagged {
			continue
		}
		log.Debug("fee table witness found", zap.Int("index", i), zap.Int("size", len(blob)))
		return authenticateWitness(blob, i, hasher, commitment)
	}
}

// loadTaggedWitness reads only the header of witness index and fetches the full
// blob when the header matches.
func loadTaggedWitness(src WitnessSource, index int) ([]byte, bool, error) {
	probe := make([]byte, WitnessHeaderBytes)
	n, err := src.LoadWitness(probe, 0, index, SourceInput)
	if err == nil {
		if n < WitnessHeaderBytes || !bytes.Equal(probe[:n], WitnessHeader[:]) {
			return nil, false, nil
		}
		return probe[:n], true, nil
	}

	var lne *LengthNotEnoughError
	if !errors.As(err, &lne) {
		return nil, false, err
	}
	if !bytes.Equal(probe, WitnessHeader[:]) {
		return nil, false, nil
	}
	full := make([]byte, lne.Size)
	n, err = src.LoadWitness(full, 0, index, SourceInput)
	if err != nil {
		return nil, false, err
	}
	return full[:n], true, nil
}

func authenticateWitness(blob []byte, index int, hasher crypto.Hasher, commitment [CommitmentBytes]byte) (*FeeTableWitness, error) {
	if len(blob) < witnessPrefixBytes {
		return nil, scripterr(ERR_WITNESS_DECODING, "witness %d: %d bytes, want >= %d", index, len(blob), witnessPrefixBytes)
	}
	body := blob[witnessPrefixBytes:]
	got := ComputeCommitment(hasher, body)
	if got != commitment {
		return nil, scripterr(ERR_WITNESS_HASH_MISMATCH, "witness %d: computed %x, committed %x", index, got[:], commitment[:])
	}
	table, err := DecodeFeeTable(body)
	if err != nil {
		return nil, err
	}
	return &FeeTableWitness{
		Index:   index,
		Version: binary.LittleEndian.Uint32(blob[WitnessHeaderBytes:witnessPrefixBytes]),
		Table:   table,
	}, nil
}

// ComputeCommitment is the truncated hash a caller commits to for a witness body.
func ComputeCommitment(hasher crypto.Hasher, body []byte) [CommitmentBytes]byte {
	digest := hasher.Blake2b256(body)
	var c [CommitmentBytes]byte
	copy(c[:], digest[:CommitmentBytes])
	return c
}

// BuildWitness assembles header, version and encoded table into a witness blob.
func BuildWitness(version uint32, t FeeTable) []byte {
	body := t.Encode()
	out := make([]byte, 0, witnessPrefixBytes+len(body))
	out = append(out, WitnessHeader[:]...)
	out = binary.LittleEndian.AppendUint32(out, version)
	return append(out, body...)
}
