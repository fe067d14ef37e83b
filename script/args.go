package script

import (
	"encoding/binary"
	"unicode/utf8"
)

type Action string

const (
	ActionCreateSubAccount Action = "create_sub_account"
	ActionRenewSubAccount  Action = "renew_sub_account"
	ActionGetPrice         Action = "get_price"
)

const (
	CommitmentBytes = 10
	u64ArgBytes     = 8
	yearsArgBytes   = 4

	// action, quote, owner_profit, das_profit
	fixedArgCount = 4
)

// SubAccountArg is one tail entry of the argument vector.
type SubAccountArg struct {
	ExpirationYears uint32
	SubAccount      []byte
}

// Args is the typed form of a price-bearing argument vector.
type Args struct {
	Action      Action
	Quote       uint64
	OwnerProfit uint64
	DasProfit   uint64
	// Commitment is nil when the built-in fee table is used.
	Commitment  *[CommitmentBytes]byte
	SubAccounts []SubAccountArg
}

// ParseArgs interprets argv as
//
//	action, quote, owner_profit, das_profit, [commitment,] (years || sub_account)+
//
// where the commitment slot is present only when the fee table comes from a witness.
func ParseArgs(argv [][]byte, tables FeeTableSource) (*Args, error) {
	if len(argv) == 0 {
		return nil, scripterr(ERR_INVALID_ARGUMENT, "empty argument vector")
	}
	if !utf8.Valid(argv[0]) {
		return nil, scripterr(ERR_INVALID_ARGUMENT, "argv[0]: action is not valid utf-8")
	}

	action := Action(argv[0])
	switch action {
	case ActionCreateSubAccount, ActionRenewSubAccount:
	case ActionGetPrice:
		return nil, scripterr(ERR_ACTION_NOT_SUPPORTED, "action %q is not implemented", action)
	default:
		return nil, scripterr(ERR_ACTION_NOT_SUPPORTED, "action %q", action)
	}

	fixed := fixedArgCount
	if tables == FeeTableFromWitness {
		fixed++
	}
	if len(argv) < fixed+1 {
		return nil, scripterr(ERR_INVALID_ARGUMENT, "%s needs at least %d arguments, got %d", action, fixed+1, len(argv))
	}

	args := &Args{Action: action}
	var err error
	if args.Quote, err = parseU64Arg(argv, 1, "quote"); err != nil {
		return nil, err
	}
	if args.Quote == 0 {
		return nil, scripterr(ERR_INVALID_ARGUMENT, "argv[1]: quote must be > 0")
	}
	if args.OwnerProfit, err = parseU64Arg(argv, 2, "owner_profit"); err != nil {
		return nil, err
	}
	if args.DasProfit, err = parseU64Arg(argv, 3, "das_profit"); err != nil {
		return nil, err
	}

	if tables == FeeTableFromWitness {
		raw := argv[fixedArgCount]
		if len(raw) != CommitmentBytes {
			return nil, scripterr(ERR_INVALID_ARGUMENT, "argv[%d]: commitment is %d bytes, want %d", fixedArgCount, len(raw), CommitmentBytes)
		}
		var c [CommitmentBytes]byte
		copy(c[:], raw)
		args.Commitment = &c
	}

	tail := argv[fixed:]
	args.SubAccounts = make([]SubAccountArg, 0, len(tail))
	for i, raw := range tail {
		if len(raw) < yearsArgBytes {
			return nil, scripterr(ERR_INVALID_ARGUMENT, "argv[%d]: sub-account entry is %d bytes, want >= %d", fixed+i, len(raw), yearsArgBytes)
		}
		args.SubAccounts = append(args.SubAccounts, SubAccountArg{
			ExpirationYears: binary.LittleEndian.Uint32(raw[:yearsArgBytes]),
			SubAccount:      raw[yearsArgBytes:],
		})
	}
	return args, nil
}

func parseU64Arg(argv [][]byte, i int, name string) (uint64, error) {
	if len(argv[i]) != u64ArgBytes {
		return 0, scripterr(ERR_INVALID_ARGUMENT, "argv[%d]: %s is %d bytes, want %d", i, name, len(argv[i]), u64ArgBytes)
	}
	return binary.LittleEndian.Uint64(argv[i]), nil
}

// EncodeArgs builds the argument vector ParseArgs accepts.
func EncodeArgs(a *Args) [][]byte {
	argv := [][]byte{
		[]byte(a.Action),
		binary.LittleEndian.AppendUint64(nil, a.Quote),
		binary.LittleEndian.AppendUint64(nil, a.OwnerProfit),
		binary.LittleEndian.AppendUint64(nil, a.DasProfit),
	}
	if a.Commitment != nil {
		argv = append(argv, append([]byte(nil), a.Commitment[:]...))
	}
	for _, sa := range a.SubAccounts {
		entry := binary.LittleEndian.AppendUint32(make([]byte, 0, yearsArgBytes+len(sa.SubAccount)), sa.ExpirationYears)
		argv = append(argv, append(entry, sa.SubAccount...))
	}
	return argv
}
