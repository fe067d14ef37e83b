package script

import (
	"math/bits"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/dotbitHQ/sub-account-custom-script/crypto"
	"github.com/dotbitHQ/sub-account-custom-script/molecule"
)

// Options configures one validation. The zero value authenticates the fee table
// from a witness with the CKB hasher and does not log.
type Options struct {
	FeeTableSource FeeTableSource
	Hasher         crypto.Hasher
	Logger         *zap.Logger
}

// RecordPrice is the fee computed for one sub-account entry.
type RecordPrice struct {
	Index   int
	Account string
	Length  int
	Years   uint32
	USD     uint64
	CKB     uint64
}

// Result describes an accepted validation.
type Result struct {
	Action         Action
	FeeTableSource FeeTableSource
	// WitnessIndex is -1 when the built-in table was used.
	WitnessIndex int
	Records      []RecordPrice
	TotalCKB     uint64
	OwnerProfit  uint64
	DasProfit    uint64
}

// Verify parses argv, resolves the fee table, prices every sub-account and checks
// that the declared profit split covers the total. The first error aborts.
func Verify(argv [][]byte, src WitnessSource, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	hasher := opts.Hasher
	if hasher == nil {
		hasher = crypto.CKBHasher{}
	}

	args, err := ParseArgs(argv, opts.FeeTableSource)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Action:         args.Action,
		FeeTableSource: opts.FeeTableSource,
		WitnessIndex:   -1,
		OwnerProfit:    args.OwnerProfit,
		DasProfit:      args.DasProfit,
	}

	var table FeeTable
	switch opts.FeeTableSource {
	case FeeTableBuiltIn:
		table = DefaultFeeTable()
	case FeeTableFromWitness:
		w, err := FindFeeTable(src, hasher, *args.Commitment, log)
		if err != nil {
			return nil, err
		}
		table = w.Table
		res.WitnessIndex = w.Index
	default:
		return nil, scripterr(ERR_CONFIG_VALUE, "unknown fee table source %s", opts.FeeTableSource)
	}

	res.Records = make([]RecordPrice, 0, len(args.SubAccounts))
	for i, entry := range args.SubAccounts {
		rp, err := priceEntry(args.Action, table, args.Quote, i, entry)
		if err != nil {
			return nil, err
		}
		total, carry := bits.Add64(res.TotalCKB, rp.CKB, 0)
		if carry != 0 {
			return nil, scripterr(ERR_ARITHMETIC_OVERFLOW, "record %d: total price overflows u64", i)
		}
		res.TotalCKB = total
		res.Records = append(res.Records, rp)
		log.Debug("sub-account priced",
			zap.Int("index", i),
			zap.String("account", rp.Account),
			zap.Int("length", rp.Length),
			zap.Uint32("years", rp.Years),
			zap.Uint64("usd", rp.USD),
			zap.Uint64("ckb", rp.CKB),
		)
	}

	if err := CheckProfit(args.OwnerProfit, args.DasProfit, res.TotalCKB); err != nil {
		return nil, err
	}
	return res, nil
}

func priceEntry(action Action, table FeeTable, quote uint64, index int, entry SubAccountArg) (RecordPrice, error) {
	sa, err := molecule.DecodeSubAccount(entry.SubAccount)
	if err != nil {
		return RecordPrice{}, scripterr(ERR_INVALID_SUB_ACCOUNT_DATA, "record %d: %v", index, err)
	}
	account, err := AccountString(sa)
	if err != nil {
		return RecordPrice{}, scripterr(ERR_INVALID_SUB_ACCOUNT_DATA, "record %d: account label is not valid utf-8", index)
	}
	usd, err := CalcPrice(action, table, sa.Account.Len(), entry.ExpirationYears)
	if err != nil {
		return RecordPrice{}, err
	}
	ckb, err := USDToCKB(usd, quote)
	if err != nil {
		return RecordPrice{}, err
	}
	return RecordPrice{
		Index:   index,
		Account: account,
		Length:  sa.Account.Len(),
		Years:   entry.ExpirationYears,
		USD:     usd,
		CKB:     ckb,
	}, nil
}

// AccountString joins the account characters into the display label.
func AccountString(sa *molecule.SubAccount) (string, error) {
	raw := sa.Account.Concat()
	if !utf8.Valid(raw) {
		return "", scripterr(ERR_INVALID_SUB_ACCOUNT_DATA, "account label is not valid utf-8")
	}
	return string(raw), nil
}
