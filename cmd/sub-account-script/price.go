package main

import (
	"github.com/spf13/cobra"

	"github.com/dotbitHQ/sub-account-custom-script/node"
	"github.com/dotbitHQ/sub-account-custom-script/script"
)

type priceReport struct {
	Action   string `json:"action"`
	Length   int    `json:"length"`
	Years    uint32 `json:"years"`
	USD      string `json:"usd"`
	USDUnits uint64 `json:"usd_units"`
	CKB      string `json:"ckb,omitempty"`
	Shannon  uint64 `json:"shannon,omitempty"`
}

func quotePrice(table script.FeeTable, action script.Action, length int, years uint32, quote uint64) (priceReport, error) {
	usd, err := script.CalcPrice(action, table, length, years)
	if err != nil {
		return priceReport{}, err
	}
	r := priceReport{
		Action:   string(action),
		Length:   length,
		Years:    years,
		USD:      node.FormatUSD(usd),
		USDUnits: usd,
	}
	if quote == 0 {
		return r, nil
	}
	ckb, err := script.USDToCKB(usd, quote)
	if err != nil {
		return priceReport{}, err
	}
	r.CKB = node.FormatCKB(ckb)
	r.Shannon = ckb
	return r, nil
}

func newPriceCmd(_ *app) *cobra.Command {
	var (
		tablePath string
		action    string
		length    int
		years     uint32
		quote     uint64
	)
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Quote the fee for an account length and term",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadFeeTable(tablePath)
			if err != nil {
				return err
			}
			r, err := quotePrice(table, script.Action(action), length, years, quote)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().StringVar(&tablePath, "table", "", "fee table YAML (default: built-in table)")
	cmd.Flags().StringVar(&action, "action", string(script.ActionCreateSubAccount), "create_sub_account|renew_sub_account")
	cmd.Flags().IntVar(&length, "length", 1, "account length in characters")
	cmd.Flags().Uint32Var(&years, "years", 1, "registration term in years")
	cmd.Flags().Uint64Var(&quote, "quote", 0, "USD per CKB scaled by 1e6 (0 prints USD only)")
	return cmd
}
