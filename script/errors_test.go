package script

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScriptError_Error(t *testing.T) {
	var nilErr *ScriptError
	require.Equal(t, "<nil>", nilErr.Error())
	require.Equal(t, "ERR_INVALID_PROFIT", (&ScriptError{Code: ERR_INVALID_PROFIT}).Error())
	require.Equal(t, "ERR_CONFIG_VALUE: tier 1", scripterr(ERR_CONFIG_VALUE, "tier %d", 1).Error())
}

func TestCodeOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("verify: %w", scripterr(ERR_WITNESS_HASH_MISMATCH, "x"))
	code, ok := CodeOf(err)
	require.True(t, ok)
	require.Equal(t, ERR_WITNESS_HASH_MISMATCH, code)

	_, ok = CodeOf(errors.New("plain"))
	require.False(t, ok)
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int8
	}{
		{nil, 0},
		{ErrIndexOutOfBound, 1},
		{SysErrItemMissing, 2},
		{&LengthNotEnoughError{Size: 9}, 3},
		{SysErrEncoding, 4},
		{scripterr(ERR_INVALID_ARGUMENT, ""), 10},
		{scripterr(ERR_ACTION_NOT_SUPPORTED, ""), 11},
		{scripterr(ERR_CAN_NOT_FIND_WITNESS, ""), 12},
		{scripterr(ERR_WITNESS_HASH_MISMATCH, ""), 13},
		{scripterr(ERR_WITNESS_DECODING, ""), 14},
		{scripterr(ERR_CONFIG_VALUE, ""), 15},
		{scripterr(ERR_INVALID_SUB_ACCOUNT_DATA, ""), 16},
		{scripterr(ERR_INVALID_PROFIT, ""), 17},
		{scripterr(ERR_ARITHMETIC_OVERFLOW, ""), 18},
		{errors.New("other"), ExitCodeUnknown},
		{&ScriptError{Code: "ERR_SOMETHING_ELSE"}, ExitCodeUnknown},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ExitCode(tc.err), "err=%v", tc.err)
	}
}

func TestSysError_Error(t *testing.T) {
	require.Equal(t, "syscall: index out of bound", ErrIndexOutOfBound.Error())
	require.Equal(t, "syscall: unknown error 9", SysError(9).Error())
	require.Equal(t, "syscall: length not enough (size 42)", (&LengthNotEnoughError{Size: 42}).Error())
}
