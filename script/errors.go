package script

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ERR_INVALID_ARGUMENT         ErrorCode = "ERR_INVALID_ARGUMENT"
	ERR_ACTION_NOT_SUPPORTED     ErrorCode = "ERR_ACTION_NOT_SUPPORTED"
	ERR_CAN_NOT_FIND_WITNESS     ErrorCode = "ERR_CAN_NOT_FIND_WITNESS"
	ERR_WITNESS_HASH_MISMATCH    ErrorCode = "ERR_WITNESS_HASH_MISMATCH"
	ERR_WITNESS_DECODING         ErrorCode = "ERR_WITNESS_DECODING"
	ERR_CONFIG_VALUE             ErrorCode = "ERR_CONFIG_VALUE"
	ERR_INVALID_SUB_ACCOUNT_DATA ErrorCode = "ERR_INVALID_SUB_ACCOUNT_DATA"
	ERR_INVALID_PROFIT           ErrorCode = "ERR_INVALID_PROFIT"
	ERR_ARITHMETIC_OVERFLOW      ErrorCode = "ERR_ARITHMETIC_OVERFLOW"
)

// Exit statuses 1..4 are reserved for SysError values.
var exitCodes = map[ErrorCode]int8{
	ERR_INVALID_ARGUMENT:         10,
	ERR_ACTION_NOT_SUPPORTED:     11,
	ERR_CAN_NOT_FIND_WITNESS:     12,
	ERR_WITNESS_HASH_MISMATCH:    13,
	ERR_WITNESS_DECODING:         14,
	ERR_CONFIG_VALUE:             15,
	ERR_INVALID_SUB_ACCOUNT_DATA: 16,
	ERR_INVALID_PROFIT:           17,
	ERR_ARITHMETIC_OVERFLOW:      18,
}

// ExitCodeUnknown is returned for errors outside the script taxonomy.
const ExitCodeUnknown int8 = -1

func (c ErrorCode) ExitCode() int8 {
	if v, ok := exitCodes[c]; ok {
		return v
	}
	return ExitCodeUnknown
}

type ScriptError struct {
	Code ErrorCode
	Msg  string
}

func (e *ScriptError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func scripterr(code ErrorCode, format string, args ...any) error {
	return &ScriptError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// CodeOf returns the script error code carried by err, if any.
func CodeOf(err error) (ErrorCode, bool) {
	var se *ScriptError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return "", false
}

// ExitCode maps a validation outcome to the status the host returns: 0 on success,
// the syscall value for evidence-source failures, the code table otherwise.
func ExitCode(err error) int8 {
	if err == nil {
		return 0
	}
	if code, ok := CodeOf(err); ok {
		return code.ExitCode()
	}
	var sys SysError
	if errors.As(err, &sys) {
		return int8(sys)
	}
	var lne *LengthNotEnoughError
	if errors.As(err, &lne) {
		return int8(SysErrLengthNotEnough)
	}
	return ExitCodeUnknown
}
