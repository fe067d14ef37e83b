package script

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func u64le(v uint64) []byte { return binary.LittleEndian.AppendUint64(nil, v) }

func TestParseArgs_WitnessLayout(t *testing.T) {
	commitment := [CommitmentBytes]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	sub := subAccountBytes("abc")
	argv := witnessArgv(ActionCreateSubAccount, 100, 7, 9, commitment,
		SubAccountArg{ExpirationYears: 2, SubAccount: sub},
		SubAccountArg{ExpirationYears: 1, SubAccount: []byte{}},
	)
	require.Len(t, argv, 7)

	args, err := ParseArgs(argv, FeeTableFromWitness)
	require.NoError(t, err)
	require.Equal(t, ActionCreateSubAccount, args.Action)
	require.Equal(t, uint64(100), args.Quote)
	require.Equal(t, uint64(7), args.OwnerProfit)
	require.Equal(t, uint64(9), args.DasProfit)
	require.NotNil(t, args.Commitment)
	require.Equal(t, commitment, *args.Commitment)
	require.Len(t, args.SubAccounts, 2)
	require.Equal(t, uint32(2), args.SubAccounts[0].ExpirationYears)
	require.Equal(t, sub, args.SubAccounts[0].SubAccount)
	require.Empty(t, args.SubAccounts[1].SubAccount)
}

func TestParseArgs_BuiltInLayout(t *testing.T) {
	argv := [][]byte{
		[]byte(ActionRenewSubAccount),
		u64le(3), u64le(0), u64le(0),
		append([]byte{5, 0, 0, 0}, 0xaa),
	}
	args, err := ParseArgs(argv, FeeTableBuiltIn)
	require.NoError(t, err)
	require.Equal(t, ActionRenewSubAccount, args.Action)
	require.Nil(t, args.Commitment)
	require.Len(t, args.SubAccounts, 1)
	require.Equal(t, uint32(5), args.SubAccounts[0].ExpirationYears)
	require.Equal(t, []byte{0xaa}, args.SubAccounts[0].SubAccount)

	// The same vector is one short when a commitment slot is expected.
	_, err = ParseArgs(argv, FeeTableFromWitness)
	expectCode(t, err, ERR_INVALID_ARGUMENT)
}

func TestParseArgs_Actions(t *testing.T) {
	_, err := ParseArgs([][]byte{[]byte(ActionGetPrice), u64le(1), u64le(1), u64le(1), make([]byte, 10), make([]byte, 4)}, FeeTableFromWitness)
	expectCode(t, err, ERR_ACTION_NOT_SUPPORTED)
	require.Contains(t, err.Error(), "not implemented")

	_, err = ParseArgs([][]byte{[]byte("transfer_account")}, FeeTableFromWitness)
	expectCode(t, err, ERR_ACTION_NOT_SUPPORTED)

	_, err = ParseArgs([][]byte{{0xff, 0xfe}}, FeeTableFromWitness)
	expectCode(t, err, ERR_INVALID_ARGUMENT)

	_, err = ParseArgs(nil, FeeTableFromWitness)
	expectCode(t, err, ERR_INVALID_ARGUMENT)
}

func TestParseArgs_FieldWidths(t *testing.T) {
	valid := func() [][]byte {
		return [][]byte{
			[]byte(ActionCreateSubAccount),
			u64le(100), u64le(1), u64le(1),
			make([]byte, CommitmentBytes),
			make([]byte, 4),
		}
	}

	cases := map[string]func(argv [][]byte) [][]byte{
		"short quote":        func(a [][]byte) [][]byte { a[1] = a[1][:7]; return a },
		"long owner profit":  func(a [][]byte) [][]byte { a[2] = append(a[2], 0); return a },
		"short das profit":   func(a [][]byte) [][]byte { a[3] = nil; return a },
		"short commitment":   func(a [][]byte) [][]byte { a[4] = a[4][:9]; return a },
		"long commitment":    func(a [][]byte) [][]byte { a[4] = make([]byte, 32); return a },
		"short tail entry":   func(a [][]byte) [][]byte { a[5] = []byte{1, 0, 0}; return a },
		"zero quote":         func(a [][]byte) [][]byte { a[1] = u64le(0); return a },
		"missing tail entry": func(a [][]byte) [][]byte { return a[:5] },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseArgs(mutate(valid()), FeeTableFromWitness)
			expectCode(t, err, ERR_INVALID_ARGUMENT)
		})
	}

	_, err := ParseArgs(valid(), FeeTableFromWitness)
	require.NoError(t, err)
}

func TestEncodeArgs_LittleEndian(t *testing.T) {
	argv := EncodeArgs(&Args{
		Action:      ActionCreateSubAccount,
		Quote:       0x0102,
		SubAccounts: []SubAccountArg{{ExpirationYears: 0x0304, SubAccount: []byte{0xee}}},
	})
	require.Equal(t, []byte{0x02, 0x01, 0, 0, 0, 0, 0, 0}, argv[1])
	require.Equal(t, []byte{0x04, 0x03, 0, 0, 0xee}, argv[4])
}
