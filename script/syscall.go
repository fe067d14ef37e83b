package script

import "fmt"

// Source selects which group of transaction data a load reads from.
type Source uint64

const (
	SourceInput       Source = 1
	SourceOutput      Source = 2
	SourceCellDep     Source = 3
	SourceHeaderDep   Source = 4
	SourceGroupInput  Source = 0x0100000000000001
	SourceGroupOutput Source = 0x0100000000000002
)

// SysError is a failure reported by the evidence source.
type SysError int8

const (
	SysErrIndexOutOfBound SysError = 1
	SysErrItemMissing     SysError = 2
	SysErrLengthNotEnough SysError = 3
	SysErrEncoding        SysError = 4
)

// ErrIndexOutOfBound ends an index enumeration.
const ErrIndexOutOfBound = SysErrIndexOutOfBound

func (e SysError) Error() string {
	switch e {
	case SysErrIndexOutOfBound:
		return "syscall: index out of bound"
	case SysErrItemMissing:
		return "syscall: item missing"
	case SysErrLengthNotEnough:
		return "syscall: length not enough"
	case SysErrEncoding:
		return "syscall: encoding error"
	default:
		return fmt.Sprintf("syscall: unknown error %d", int8(e))
	}
}

// LengthNotEnoughError reports that the buffer was filled but the item is longer.
// Size is the number of bytes available from the requested offset.
type LengthNotEnoughError struct {
	Size int
}

func (e *LengthNotEnoughError) Error() string {
	return fmt.Sprintf("syscall: length not enough (size %d)", e.Size)
}

// WitnessSource is the evidence source witnesses are fetched from.
//
// LoadWitness copies the witness at index, starting at offset, into buf. It returns
// the number of bytes written when the remainder fits in buf; otherwise it fills buf
// and returns *LengthNotEnoughError carrying the remaining size. ErrIndexOutOfBound
// signals the end of the enumeration.
type WitnessSource interface {
	LoadWitness(buf []byte, offset int, index int, source Source) (int, error)
}
