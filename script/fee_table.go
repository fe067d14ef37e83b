package script

import (
	"fmt"
	"strings"

	"github.com/dotbitHQ/sub-account-custom-script/molecule"
)

// FeeTable maps account length to unit prices. Thresholds are strictly increasing
// and the last tier covers every longer account.
type FeeTable []molecule.PriceConfig

// FeeTableSource selects where Verify takes its fee table from.
type FeeTableSource int

const (
	// FeeTableFromWitness authenticates a table carried in a transaction witness.
	FeeTableFromWitness FeeTableSource = iota
	// FeeTableBuiltIn uses DefaultFeeTable and takes no commitment argument.
	FeeTableBuiltIn
)

func (s FeeTableSource) String() string {
	switch s {
	case FeeTableFromWitness:
		return "witness"
	case FeeTableBuiltIn:
		return "builtin"
	default:
		return fmt.Sprintf("FeeTableSource(%d)", int(s))
	}
}

func ParseFeeTableSource(s string) (FeeTableSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "witness":
		return FeeTableFromWitness, nil
	case "builtin":
		return FeeTableBuiltIn, nil
	default:
		return 0, fmt.Errorf("unknown fee table source %q (want witness|builtin)", s)
	}
}

// USD prices scaled by 1e6.
var defaultFeeTable = FeeTable{
	{Length: 1, New: 16_000_000, Renew: 16_000_000},
	{Length: 2, New: 8_000_000, Renew: 8_000_000},
	{Length: 3, New: 4_000_000, Renew: 4_000_000},
	{Length: 4, New: 2_000_000, Renew: 2_000_000},
	{Length: 5, New: 1_000_000, Renew: 1_000_000},
}

// DefaultFeeTable returns a copy of the built-in fee table.
func DefaultFeeTable() FeeTable {
	return append(FeeTable(nil), defaultFeeTable...)
}

// ValidateFeeTable rejects empty tables and thresholds that do not strictly increase.
func ValidateFeeTable(t FeeTable) error {
	if len(t) == 0 {
		return scripterr(ERR_CONFIG_VALUE, "fee table has no tiers")
	}
	for i := 1; i < len(t); i++ {
		if t[i].Length <= t[i-1].Length {
			return scripterr(ERR_CONFIG_VALUE, "tier %d: length %d must be greater than tier %d length %d", i, t[i].Length, i-1, t[i-1].Length)
		}
	}
	return nil
}

// DecodeFeeTable decodes a witness body and validates it.
func DecodeFeeTable(body []byte) (FeeTable, error) {
	list, err := molecule.DecodePriceConfigList(body)
	if err != nil {
		return nil, scripterr(ERR_WITNESS_DECODING, "fee table: %v", err)
	}
	t := FeeTable(list)
	if err := ValidateFeeTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Encode serializes the table as a witness body.
func (t FeeTable) Encode() []byte {
	return molecule.PriceConfigList(t).Encode()
}
