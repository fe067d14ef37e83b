package node

import "github.com/cockroachdb/apd/v3"

// USDDecimals is the scale of reference-currency amounts in fee tables.
const USDDecimals = 6

// FormatCKB renders a shannon amount as a CKB decimal string.
func FormatCKB(shannon uint64) string {
	return formatScaled(shannon, 8)
}

// FormatUSD renders a fee-table amount in whole reference units.
func FormatUSD(units uint64) string {
	return formatScaled(units, USDDecimals)
}

func formatScaled(v uint64, decimals int32) string {
	d := apd.NewWithBigInt(new(apd.BigInt).SetUint64(v), -decimals)
	return d.Text('f')
}
