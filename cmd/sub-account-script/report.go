package main

import (
	"github.com/samber/lo"

	"github.com/dotbitHQ/sub-account-custom-script/node"
	"github.com/dotbitHQ/sub-account-custom-script/script"
)

type recordReport struct {
	Account string `json:"account"`
	Length  int    `json:"length"`
	Years   uint32 `json:"years"`
	USD     string `json:"usd"`
	CKB     string `json:"ckb"`
}

type verifyReport struct {
	RunID        string         `json:"run_id"`
	Ok           bool           `json:"ok"`
	ExitCode     int8           `json:"exit_code"`
	Code         string         `json:"code,omitempty"`
	Err          string         `json:"err,omitempty"`
	Action       string         `json:"action,omitempty"`
	FeeTable     string         `json:"fee_table,omitempty"`
	WitnessIndex *int           `json:"witness_index,omitempty"`
	Records      []recordReport `json:"records,omitempty"`
	TotalCKB     string         `json:"total_ckb,omitempty"`
	Profit       string         `json:"profit_ckb,omitempty"`
}

func newVerifyReport(out node.Outcome) verifyReport {
	r := verifyReport{RunID: out.RunID, Ok: out.Err == nil, ExitCode: out.ExitCode}
	if out.Err != nil {
		r.Err = out.Err.Error()
		if code, ok := script.CodeOf(out.Err); ok {
			r.Code = string(code)
		}
		return r
	}
	res := out.Result
	r.Action = string(res.Action)
	r.FeeTable = res.FeeTableSource.String()
	if res.WitnessIndex >= 0 {
		r.WitnessIndex = lo.ToPtr(res.WitnessIndex)
	}
	r.Records = lo.Map(res.Records, func(p script.RecordPrice, _ int) recordReport {
		return recordReport{
			Account: p.Account,
			Length:  p.Length,
			Years:   p.Years,
			USD:     node.FormatUSD(p.USD),
			CKB:     node.FormatCKB(p.CKB),
		}
	})
	r.TotalCKB = node.FormatCKB(res.TotalCKB)
	// Saturates like the conservation check, which treats a carry as sufficient.
	profit := res.OwnerProfit + res.DasProfit
	if profit < res.OwnerProfit {
		profit = ^uint64(0)
	}
	r.Profit = node.FormatCKB(profit)
	return r
}
