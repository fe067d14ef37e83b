package script

import "math/bits"

// ShannonPerCKB is the number of settlement base units per CKB.
const ShannonPerCKB uint64 = 100_000_000

// UnitPrice selects the per-year price for an account of accountLen characters.
//
// An exact threshold match selects that tier; an account at or above the last
// threshold always takes the last tier, overriding any exact match. A length that
// falls between thresholds without matching one prices at zero.
func UnitPrice(action Action, t FeeTable, accountLen int) (uint64, error) {
	if len(t) == 0 {
		return 0, scripterr(ERR_CONFIG_VALUE, "fee table has no tiers")
	}
	pick, err := tierPicker(action)
	if err != nil {
		return 0, err
	}

	var price uint64
	var last uint8
	for _, tier := range t {
		last = tier.Length
		if accountLen == int(tier.Length) {
			price = pick(tier.New, tier.Renew)
		}
	}
	if accountLen >= int(last) {
		tail := t[len(t)-1]
		price = pick(tail.New, tail.Renew)
	}
	return price, nil
}

func tierPicker(action Action) (func(newPrice, renewPrice uint64) uint64, error) {
	switch action {
	case ActionCreateSubAccount:
		return func(n, _ uint64) uint64 { return n }, nil
	case ActionRenewSubAccount:
		return func(_, r uint64) uint64 { return r }, nil
	default:
		return nil, scripterr(ERR_ACTION_NOT_SUPPORTED, "no price for action %q", action)
	}
}

// CalcPrice is the reference-currency price for accountLen characters over years.
func CalcPrice(action Action, t FeeTable, accountLen int, years uint32) (uint64, error) {
	unit, err := UnitPrice(action, t, accountLen)
	if err != nil {
		return 0, err
	}
	hi, lo := bits.Mul64(unit, uint64(years))
	if hi != 0 {
		return 0, scripterr(ERR_ARITHMETIC_OVERFLOW, "unit price %d * %d years overflows u64", unit, years)
	}
	return lo, nil
}

// USDToCKB converts a reference price to shannon at quote reference units per CKB.
//
// Below the quote the product is taken first so sub-CKB amounts keep their
// precision; at or above it the division is taken first. Both truncate.
func USDToCKB(usd, quote uint64) (uint64, error) {
	if quote == 0 {
		return 0, scripterr(ERR_INVALID_ARGUMENT, "quote must be > 0")
	}
	if usd < quote {
		// usd*1e8/quote < 1e8, so the 128-bit quotient always fits.
		hi, lo := bits.Mul64(usd, ShannonPerCKB)
		q, _ := bits.Div64(hi, lo, quote)
		return q, nil
	}
	hi, lo := bits.Mul64(usd/quote, ShannonPerCKB)
	if hi != 0 {
		return 0, scripterr(ERR_ARITHMETIC_OVERFLOW, "%d / %d CKB overflows u64 shannon", usd, quote)
	}
	return lo, nil
}

// CheckProfit asserts the declared profit split covers total.
func CheckProfit(ownerProfit, dasProfit, total uint64) error {
	profit, carry := bits.Add64(ownerProfit, dasProfit, 0)
	if carry != 0 {
		return nil
	}
	if profit < total {
		return scripterr(ERR_INVALID_PROFIT, "owner_profit %d + das_profit %d = %d is less than price %d", ownerProfit, dasProfit, profit, total)
	}
	return nil
}
