package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dotbitHQ/sub-account-custom-script/node"
	"github.com/dotbitHQ/sub-account-custom-script/script"
)

// Request is one JSON object read by exec. Byte fields are hex.
type Request struct {
	Op        string   `json:"op"`
	Args      []string `json:"args,omitempty"`
	Witnesses []string `json:"witnesses,omitempty"`
	Set       string   `json:"set,omitempty"`
	Action    string   `json:"action,omitempty"`
	Length    int      `json:"length,omitempty"`
	Years     uint32   `json:"years,omitempty"`
	Quote     uint64   `json:"quote,omitempty"`
}

type Response struct {
	Ok     bool          `json:"ok"`
	Err    string        `json:"err,omitempty"`
	Verify *verifyReport `json:"verify,omitempty"`
	Price  *priceReport  `json:"price,omitempty"`
}

func readRequests(r io.Reader) ([]Request, error) {
	dec := json.NewDecoder(r)
	var reqs []Request
	for {
		var req Request
		err := dec.Decode(&req)
		if errors.Is(err, io.EOF) {
			return reqs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("bad request %d: %w", len(reqs), err)
		}
		reqs = append(reqs, req)
	}
}

func newExecCmd(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Answer a stream of JSON requests from stdin",
		Long: "exec reads JSON requests until EOF and writes one JSON response per request,\n" +
			"in order. Ops: verify {args, witnesses|set}, price {action, length, years, quote}.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reqs, err := readRequests(cmd.InOrStdin())
			if err != nil {
				return err
			}
			resps := make([]Response, len(reqs))
			var (
				jobs  []node.Job
				slots []int
			)
			for i, req := range reqs {
				switch req.Op {
				case "verify":
					job, err := a.verifyJob(req)
					if err != nil {
						resps[i] = Response{Err: err.Error()}
						continue
					}
					jobs = append(jobs, job)
					slots = append(slots, i)
				case "price":
					r, err := quotePrice(script.DefaultFeeTable(), script.Action(req.Action), req.Length, req.Years, req.Quote)
					if err != nil {
						resps[i] = Response{Err: err.Error()}
						continue
					}
					resps[i] = Response{Ok: true, Price: &r}
				default:
					resps[i] = Response{Err: fmt.Sprintf("unknown op %q", req.Op)}
				}
			}

			outs, err := a.runner().RunBatch(cmd.Context(), jobs, workers)
			if err != nil {
				return err
			}
			for j, out := range outs {
				rep := newVerifyReport(out)
				resps[slots[j]] = Response{Ok: rep.Ok, Err: rep.Err, Verify: &rep}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			for _, resp := range resps {
				if err := enc.Encode(resp); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent validations")
	return cmd
}

func (a *app) verifyJob(req Request) (node.Job, error) {
	argv, err := decodeHexList(req.Args, "args")
	if err != nil {
		return node.Job{}, err
	}
	witnesses, err := a.loadWitnesses(req.Witnesses, req.Set)
	if err != nil {
		return node.Job{}, err
	}
	return node.Job{Argv: argv, Witnesses: node.NewMemWitnessSource(witnesses)}, nil
}
